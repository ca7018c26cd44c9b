package routes

import (
	"net/http"
	"time"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Middleware holds the request guards shared by the route groups.
type Middleware struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	ReportLimit  gin.HandlerFunc
}

type Controllers struct {
	Auth      *controllers.AuthController
	Reports   *controllers.ReportController
	Dashboard *controllers.DashboardController
	Staff     *controllers.StaffController
	Catalog   *controllers.CatalogController
}

// NewRouter builds the engine with recovery, Sentry, CORS and request
// logging, then registers every route.
func NewRouter(logger *zap.Logger, corsOrigins []string, c Controllers, mw Middleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Setup(r, c, mw)
	return r
}

// Setup registers every route on r.
func Setup(r *gin.Engine, c Controllers, mw Middleware) {
	AuthRoutes(r, c.Auth, mw)
	CatalogRoutes(r, c.Catalog, mw)
	ReportRoutes(r, c.Reports, mw)
	DashboardRoutes(r, c.Dashboard, c.Staff, mw)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
