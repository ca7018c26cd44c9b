package controllers

import (
	"context"
	"net/http"
	"time"

	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/services"
	authUtils "civicreport-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CookieSettings struct {
	Domain string
	Secure bool
}

type AuthController struct {
	auth   *services.AuthService
	secret string
	expiry time.Duration
	cookie CookieSettings
	logger *zap.Logger
}

func NewAuthController(auth *services.AuthService, secret string, expiry time.Duration, cookie CookieSettings, logger *zap.Logger) *AuthController {
	return &AuthController{auth: auth, secret: secret, expiry: expiry, cookie: cookie, logger: logger}
}

// SignUp handles user registration
func (ac *AuthController) SignUp(c *gin.Context) {
	var input struct {
		Name         string `json:"name" binding:"required,max=50"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=6"`
		Type         string `json:"type"`
		Municipality string `json:"municipality" binding:"required"`
		Ward         string `json:"ward"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := ac.auth.SignUp(ctx, services.SignUpInput{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		Type:           models.UserType(input.Type),
		MunicipalityID: input.Municipality,
		Ward:           input.Ward,
	})
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	ac.startSession(c, user, http.StatusCreated)
}

// SignIn handles user login
func (ac *AuthController) SignIn(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := ac.auth.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	ac.startSession(c, user, http.StatusOK)
}

func (ac *AuthController) startSession(c *gin.Context, user models.User, status int) {
	sess, err := ac.auth.SessionFor(user)
	if err != nil {
		respondError(c, ac.logger, err)
		return
	}

	token, err := authUtils.GenerateToken(sess, ac.secret, ac.expiry)
	if err != nil {
		ac.logger.Error("error generating token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	cookie := &http.Cookie{
		Name:     authUtils.AuthCookie,
		Value:    token,
		MaxAge:   int(ac.expiry.Seconds()),
		Path:     "/",
		Domain:   ac.cookie.Domain,
		Secure:   ac.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode, // Required for cross-origin cookies in production
	}
	http.SetCookie(c.Writer, cookie)

	c.JSON(status, gin.H{
		"id":        user.ID,
		"session":   sess,
		"token":     token,
		"createdAt": user.CreatedAt,
	})
}

// Me returns the session of the signed-in user
func (ac *AuthController) Me(c *gin.Context) {
	sess, ok := middlewares.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Logout clears the auth_token cookie
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(authUtils.AuthCookie, "", -1, "/", ac.cookie.Domain, ac.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
