package main

import (
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payments/venue-rent", func(ctx *gin.Context) {
			var body types.CreateRentOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var request models.BookingRequest
			if err := db.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: body.BookingRequestID}).
				First(&request).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("booking request not found"))
				return
			}
			if request.RequesterID != userId {
				respondError(ctx, types.NewAuthorizationError("not allowed to pay for this request"))
				return
			}
			order, err := utils.CreateVenueRentOrder(body.BookingRequestID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": order})
		}).
		PUT("/payments/venue-rent", func(ctx *gin.Context) {
			var body types.VerifyRentPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := utils.ConfirmRentPayment(&body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			go utils.NotifyBookingDecision(request)
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		})
	return g
}
