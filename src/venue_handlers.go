package main

import (
	"acecampus/src/common"
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func venueHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/venues/requests", func(ctx *gin.Context) {
			var body types.CreateVenueBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			request, err := utils.CreateVenueBookingRequest(&body, userId, role)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": request})
		}).
		GET("/venues/requests", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var requests []models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{RequesterID: userId}).
				Preload("Venue").
				Order("created_at desc").
				Find(&requests).
				Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		GET("/venues/requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var request models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: params.ID, RequesterID: userId}).
				Preload("Venue").
				First(&request).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("booking request not found"))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		PUT("/venues/requests/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var request models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: params.ID}).
				First(&request).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("booking request not found"))
				return
			}
			if request.RequesterID != userId && role != "admin" {
				respondError(ctx, types.NewAuthorizationError("not allowed to cancel this request"))
				return
			}
			updated, err := utils.ApplyBookingRequestTransition(params.ID, common.TransitionInput{
				Action: types.ACTION_CANCEL,
				Note:   "cancelled by requester",
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			go utils.NotifyBookingDecision(updated)
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		}).
		GET("/bookings/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var request models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: params.ID, RequesterID: userId}).
				First(&request).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("booking request not found"))
				return
			}
			filepath, err := utils.ExportBookingQR(&request)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.File(filepath)
		})
	return g
}
