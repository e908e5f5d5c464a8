package main

import (
	"acecampus/src/common"
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/venue-requests", func(ctx *gin.Context) {
			db := db.GetDb()
			var requests []models.BookingRequest
			q := db.
				Model(&models.BookingRequest{}).
				Preload("Venue").
				Preload("Requester").
				Order("created_at desc")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			if err := q.Find(&requests).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": requests, "count": len(requests)})
		}).
		PUT("/venue-requests/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.DecisionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			request, err := utils.ApplyBookingRequestTransition(params.ID, common.TransitionInput{
				Action:          body.Action,
				RejectionReason: body.RejectionReason,
				Amount:          body.RentAmount,
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			go utils.NotifyBookingDecision(request)
			ctx.JSON(http.StatusOK, gin.H{"data": request})
		}).
		PUT("/event-bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.DecisionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.ApplyEventBookingTransition(params.ID, common.TransitionInput{
				Action:          body.Action,
				RejectionReason: body.RejectionReason,
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/role-requests", func(ctx *gin.Context) {
			db := db.GetDb()
			var users []models.User
			if err := db.
				Model(&models.User{}).
				Where(&models.User{RoleRequestStatus: types.ROLE_REQUEST_PENDING}).
				Order("updated_at asc").
				Find(&users).
				Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		PUT("/role-request", func(ctx *gin.Context) {
			var body types.RoleDecisionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user, err := utils.ApplyRoleRequestDecision(body.UserID, body.Action, body.RejectionReason)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		POST("/venues", func(ctx *gin.Context) {
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			venue := models.Venue{
				Name:       body.Name,
				Slug:       slug.Make(body.Name),
				Location:   body.Location,
				Capacity:   body.Capacity,
				RentPerDay: body.RentPerDay,
				About:      &body.About,
				CreatedBy:  ctx.GetUint("id"),
			}
			db := db.GetDb()
			if err := db.Create(&venue).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": venue})
		}).
		PUT("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var venue models.Venue
			if err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.Venue{ID: params.ID}).First(&venue).Error; err != nil {
					return types.NewNotFoundError("venue not found")
				}
				if err := tx.
					Model(&models.Venue{}).
					Where(&models.Venue{ID: params.ID}).
					Updates(map[string]any{
						"name":         body.Name,
						"slug":         slug.Make(body.Name),
						"location":     body.Location,
						"capacity":     body.Capacity,
						"rent_per_day": body.RentPerDay,
						"about":        body.About,
					}).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		DELETE("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.
					Model(&models.BookingRequest{}).
					Where(&models.BookingRequest{VenueID: params.ID}).
					Where("status IN (?)", []types.BookingStatus{
						types.BOOKING_PENDING,
						types.BOOKING_APPROVED,
						types.BOOKING_PAYMENT_PENDING,
					}).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return types.NewConflictError("venue has open booking requests")
				}
				if err := tx.Delete(&models.Venue{ID: params.ID}).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
