package boot

import (
	"acecampus/src/db"
	"acecampus/src/lib"
	"acecampus/src/models"
	"acecampus/src/utils"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Event{},
		&models.BookingRequest{},
		&models.EventBooking{},
		&models.PaymentOrder{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	// Backstop for the conflict check in CreateVenueBookingRequest. Only one
	// blocking request may hold a venue on a given date.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_requests_venue_date_active
		ON booking_requests (venue_id, event_date)
		WHERE status IN ('approved', 'payment_pending', 'completed')`).Error
	if err != nil {
		log.Printf("error creating venue date index: %s\n", err.Error())
	}

	return db
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(utils.ExpireStalePaymentRequests),
	)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	log.Printf("Job ID: %s %s\n", j.Name(), j.ID().String())
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
