package main

import (
	"net/http"
	"shareit/src/common"
	"shareit/src/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			bookerId := ctx.GetUint("id")
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.CreateBooking(bookerId, &body)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		PATCH("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			approved, err := strconv.ParseBool(ctx.Query("approved"))
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
				return
			}
			actorId := ctx.GetUint("id")
			booking, err := common.DecideBooking(params.ID, actorId, approved)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actorId := ctx.GetUint("id")
			booking, err := common.GetBooking(actorId, params.ID)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			bookerId := ctx.GetUint("id")
			state, from, size, err := bookingListParams(ctx)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			bookings, err := common.ListBookingsByBooker(bookerId, state, from, size)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/owner", func(ctx *gin.Context) {
			ownerId := ctx.GetUint("id")
			state, from, size, err := bookingListParams(ctx)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			bookings, err := common.ListBookingsByOwner(ownerId, state, from, size)
			if err != nil {
				ctx.JSON(common.ErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

func bookingListParams(ctx *gin.Context) (types.BookingState, int, int, error) {
	state, ok := types.ParseBookingState(ctx.DefaultQuery("state", string(types.STATE_ALL)))
	if !ok {
		return "", 0, 0, common.ErrInvalidArgument
	}
	var page types.PageQueryParams
	if err := ctx.ShouldBindQuery(&page); err != nil {
		return "", 0, 0, common.ErrInvalidArgument
	}
	return state, page.From, page.Size, nil
}
