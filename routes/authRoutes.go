package routes

import (
	"civicreport-be/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, mw Middleware) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", ac.SignUp)
		auth.POST("/signin", ac.SignIn)
		auth.GET("/me", mw.Auth, ac.Me)
		auth.POST("/logout", ac.Logout)
	}
}
