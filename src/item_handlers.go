package main

import (
	"net/http"
	"shareit/src/common"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func itemHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/items", func(ctx *gin.Context) {
			ownerId := ctx.GetUint("id")
			var body types.CreateItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			item, err := common.CreateItem(ownerId, &body)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": item})
		}).
		PATCH("/items/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ownerId := ctx.GetUint("id")
			var body types.UpdateItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			item, err := common.UpdateItem(ownerId, params.ID, &body)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": item})
		}).
		GET("/items/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			callerId := ctx.GetUint("id")
			item, err := common.GetItem(callerId, params.ID)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": item})
		}).
		GET("/items", func(ctx *gin.Context) {
			ownerId := ctx.GetUint("id")
			var page types.PageQueryParams
			if err := ctx.ShouldBindQuery(&page); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			items, err := common.ListItems(ownerId, page.From, page.Size)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		GET("/items/search", func(ctx *gin.Context) {
			var page types.PageQueryParams
			if err := ctx.ShouldBindQuery(&page); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			items, err := common.SearchItems(ctx.Query("text"), page.From, page.Size)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/items/:id/comment", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			authorId := ctx.GetUint("id")
			var body types.CreateCommentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			comment, err := common.AddComment(authorId, params.ID, &body)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": comment})
		})
	return g
}
