package utils

import (
	"acecampus/src/common"
	"acecampus/src/db"
	"acecampus/src/types"
	"log"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	db.NewDB(gormDB)
	return mock
}

const pendingHistory = `[{"status":"pending","timestamp":"2026-08-28T10:00:00Z","note":"registration created"}]`

func TestApplyEventBookingTransitionApproveIsFinal(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectBegin()
	rows := sqlmock.NewRows([]string{"id", "status", "total_amount", "attendees", "status_history"}).
		AddRow(1, "pending", 500.0, 2, []byte(pendingHistory))
	mock.ExpectQuery(`SELECT (.+) FROM "event_bookings"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "event_bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := ApplyEventBookingTransition(1, common.TransitionInput{
		Action: types.ACTION_APPROVE,
	})
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED, booking.Status)
	assert.Len(t, booking.StatusHistory, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRequestSlotConflict(t *testing.T) {
	mock := newTestDB(t)

	mock.ExpectBegin()
	venueRows := sqlmock.NewRows([]string{"id", "name", "capacity"}).
		AddRow(7, "Main Hall", 200)
	mock.ExpectQuery(`SELECT (.+) FROM "venues"`).WillReturnRows(venueRows)
	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "booking_requests"`).WillReturnRows(countRows)
	mock.ExpectRollback()

	body := types.CreateVenueBookingRequestBody{
		VenueID:           7,
		EventName:         "Tech Fest",
		EventDate:         "2026-09-10",
		EventStartTime:    "09:00",
		EventEndTime:      "17:00",
		ExpectedAttendees: 120,
		Purpose:           "annual fest",
		OrganizerName:     "Test Organizer",
		OrganizerEmail:    "organizer@example.com",
	}
	request, err := CreateVenueBookingRequest(&body, 3, "student")
	require.Error(t, err)
	assert.Nil(t, request)
	assert.Equal(t, http.StatusConflict, types.StatusCode(err))
	assert.Equal(t, "venue is already booked for the requested date", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
