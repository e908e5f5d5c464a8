package main

import (
	"acecampus/src/boot"
	"acecampus/src/config"
	"acecampus/src/controllers"
	"acecampus/src/db"
	"acecampus/src/middlewares"
	"acecampus/src/models"
	"acecampus/src/types"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

// respondError maps a lifecycle or handler error to its HTTP status. Internal
// errors never leak their message to the client.
func respondError(ctx *gin.Context, err error) {
	status := types.StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Error while processing request: %s\n", err.Error())
		message = "Error while processing request"
	}
	ctx.JSON(status, gin.H{"error": message})
}

var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	day, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	today, _ := time.Parse(config.DATE_PARSE_FORMAT, time.Now().Format(config.DATE_PARSE_FORMAT))
	return !day.Before(today)
}

var eventDateTimeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	return !time.Now().After(datetime)
}

var gttime validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	t, err := time.Parse(config.CLOCK_PARSE_FORMAT, value)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	other, err := time.Parse(config.CLOCK_PARSE_FORMAT, field.Interface().(string))
	if err != nil {
		return false
	}
	return t.After(other)
}

var ltdate validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, value)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	other, err := time.Parse(config.TIME_PARSE_FORMAT, field.Interface().(string))
	if err != nil {
		return false
	}
	return datetime.Before(other)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atob, err := strconv.ParseBool(mm)
		if err == nil && atob {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/venues", func(ctx *gin.Context) {
			db := db.GetDb()
			var venues []models.Venue
			if err := db.Order("name asc").Find(&venues).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": venues, "count": len(venues)})
		}).
		GET("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var venue models.Venue
			if err := db.Where(&models.Venue{ID: params.ID}).First(&venue).Error; err != nil {
				respondError(ctx, types.NewNotFoundError("venue not found"))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": venue})
		}).
		GET("/events", func(ctx *gin.Context) {
			db := db.GetDb()
			var events []models.Event
			if err := db.
				Where(&models.Event{Status: types.EVENT_OPEN}).
				Order("date_time asc").
				Find(&events).
				Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "count": len(events)})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var event models.Event
			if err := db.
				Preload("Venue").
				Where(&models.Event{ID: params.ID}).
				First(&event).
				Error; err != nil {
				respondError(ctx, types.NewNotFoundError("event not found"))
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		})
	return apiv1
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/register", func(ctx *gin.Context) {
			token, status, err := controllers.AuthRegister(ctx)
			if err != nil {
				log.Printf("[AuthRegister] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"token": token})
		}).
		POST("/login", func(ctx *gin.Context) {
			token, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				log.Printf("[AuthLogin] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"token": token})
		})
	return guest
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("eventdatetime", eventDateTimeValidatorFunc)
		v.RegisterValidation("gttime", gttime)
		v.RegisterValidation("ltdate", ltdate)
	}

	router = maintenanceModeMiddleware(router)

	publicRoutes(router)

	guestAuthRoutes(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = venueHandlers(authorized)
		authorized = eventHandlers(authorized)
		authorized = paymentHandlers(authorized)
		authorized = accountHandlers(authorized)

		admin := authorized.Group("/admin")
		admin.Use(middlewares.RequireRole("admin"))
		adminHandlers(admin)
	}

	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
