package main

import (
	"acecampus/src/common"
	"acecampus/src/config"
	"acecampus/src/db"
	"acecampus/src/models"
	"acecampus/src/types"
	"acecampus/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			role := ctx.GetString("role")
			if role != "organizer" && role != "admin" {
				respondError(ctx, types.NewAuthorizationError("only organizers can create events"))
				return
			}
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dateTime, err := time.Parse(config.TIME_PARSE_FORMAT, body.DateTime)
			if err != nil {
				log.Printf("Error parsing date_time: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "date_time is not a valid timestamp"})
				return
			}
			deadline, err := time.Parse(config.TIME_PARSE_FORMAT, body.Deadline)
			if err != nil {
				log.Printf("Error parsing deadline: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "deadline is not a valid timestamp"})
				return
			}
			status := types.EVENT_DRAFT
			if body.Publish {
				status = types.EVENT_OPEN
			}
			event := models.Event{
				Title:     body.Title,
				About:     &body.About,
				VenueID:   body.VenueID,
				DateTime:  dateTime,
				Deadline:  deadline,
				Seats:     body.Seats,
				Fee:       body.Fee,
				Status:    status,
				CreatedBy: ctx.GetUint("id"),
			}
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				if body.VenueID != nil {
					var venue models.Venue
					if err := tx.Where(&models.Venue{ID: *body.VenueID}).First(&venue).Error; err != nil {
						return types.NewNotFoundError("venue not found")
					}
				}
				if err := tx.Create(&event).Error; err != nil {
					return err
				}
				return nil
			}); err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		POST("/events/:id/bookings", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body struct {
				Attendees uint `json:"attendees,omitempty" binding:"omitempty,gte=1"`
			}
			if ctx.Request.ContentLength > 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			booking, err := utils.CreateEventBooking(params.ID, userId, role, body.Attendees)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/events/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.EventBooking
			if err := db.
				Model(&models.EventBooking{}).
				Where(&models.EventBooking{RequesterID: userId}).
				Preload("Event").
				Order("created_at desc").
				Find(&bookings).
				Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/events/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var booking models.EventBooking
			if err := db.
				Model(&models.EventBooking{}).
				Where(&models.EventBooking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("event booking not found"))
				return
			}
			if booking.RequesterID != userId && role != "admin" {
				respondError(ctx, types.NewAuthorizationError("not allowed to cancel this booking"))
				return
			}
			updated, err := utils.ApplyEventBookingTransition(params.ID, common.TransitionInput{
				Action: types.ACTION_CANCEL,
				Note:   "cancelled by requester",
			})
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": updated})
		})
	return g
}
