package main

import (
	"net/http"
	"shareit/src/common"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func requestHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/requests", func(ctx *gin.Context) {
			requesterId := ctx.GetUint("id")
			var body types.CreateItemRequestRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := common.CreateItemRequest(requesterId, &body)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": request})
		}).
		GET("/requests", func(ctx *gin.Context) {
			requesterId := ctx.GetUint("id")
			requests, err := common.ListOwnRequests(requesterId)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/requests/all", func(ctx *gin.Context) {
			callerId := ctx.GetUint("id")
			var page types.PageQueryParams
			if err := ctx.ShouldBindQuery(&page); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			requests, err := common.ListOtherRequests(callerId, page.From, page.Size)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			callerId := ctx.GetUint("id")
			request, err := common.GetItemRequest(callerId, params.ID)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		})
	return g
}
