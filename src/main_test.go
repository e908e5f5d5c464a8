package main

import (
	"acecampus/src/db"
	"acecampus/src/middlewares"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB   *gorm.DB
	Mock sqlmock.Sqlmock
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("eventdatetime", eventDateTimeValidatorFunc)
		v.RegisterValidation("gttime", gttime)
		v.RegisterValidation("ltdate", ltdate)
	}

	d, mock := NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = mock
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestSecureHeaders() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(s.T(), "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func (s *TestSuite) TestAuthRoutes() {
	router := setupRouter()
	guestAuthRoutes(router)

	s.Run("Should reject register with an invalid body", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{"name": "Test User"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.NotEmpty(s.T(), gjson.Get(string(rbytes), "error").String())
	})

	s.Run("Should return 404 for an unknown email", func() {
		s.Mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnError(gorm.ErrRecordNotFound)

		w := httptest.NewRecorder()
		jbody := map[string]any{"email": "nobody@example.com"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Should return a token for a known email", func() {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow(1, "Test User", "someone@example.com", "student")
		s.Mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(rows)

		w := httptest.NewRecorder()
		jbody := map[string]any{"email": "someone@example.com"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 200, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.NotEmpty(s.T(), gjson.Get(string(rbytes), "token").String())
	})
}

func (s *TestSuite) TestAuthorizedRoutesRequireToken() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	venueHandlers(apiv1)
	paymentHandlers(apiv1)

	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/venues/requests"},
		{"POST", "/api/v1/venues/requests"},
		{"POST", "/api/v1/payments/venue-rent"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(route.method, route.path, nil)
		router.ServeHTTP(w, req)

		assert.Equalf(s.T(), 401, w.Code, "%s %s", route.method, route.path)
	}

	s.Run("Should reject a bearer header with no token", func() {
		for _, header := range []string{"Bearer", "Bearer "} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/v1/venues/requests", nil)
			req.Header.Set("Authorization", header)
			router.ServeHTTP(w, req)

			assert.Equalf(s.T(), 401, w.Code, "header %q", header)
		}
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
