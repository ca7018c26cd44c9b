package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"civicreport-be/models"
	authUtils "civicreport-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionValidator rejects sessions that no longer match the catalog.
type SessionValidator interface {
	ValidateSession(sess models.Session) error
}

type AuthOptions struct {
	Secret       string
	Validator    SessionValidator
	CookieDomain string
	SecureCookie bool
	Logger       *zap.Logger
}

func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(authUtils.AuthCookie); err == nil {
		return cookie
	}
	return ""
}

// loadSession parses and validates the request's token. Stale or malformed
// sessions clear the auth cookie so the client signs in again.
func loadSession(c *gin.Context, opts AuthOptions) (models.Session, bool) {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return models.Session{}, false
	}

	sess, err := authUtils.ParseToken(tokenString, opts.Secret)
	if err == nil && opts.Validator != nil {
		err = opts.Validator.ValidateSession(sess)
	}
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Debug("rejected session", zap.Error(err))
		}
		c.SetCookie(authUtils.AuthCookie, "", -1, "/", opts.CookieDomain, opts.SecureCookie, true)
		return models.Session{}, false
	}
	return sess, true
}

// AuthMiddleware requires a valid session from a Bearer token or the
// auth_token cookie.
func AuthMiddleware(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenFromRequest(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}
		sess, ok := loadSession(c, opts)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// OptionalAuth attaches the session when one is present and valid but never
// rejects the request.
func OptionalAuth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := loadSession(c, opts); ok {
			c.Set(sessionKey, sess)
		}
		c.Next()
	}
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(roles ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		if !slices.Contains(roles, sess.Type) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff admits every municipal role.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(
		models.UserCallCenter,
		models.UserFieldWorker,
		models.UserWardCouncillor,
		models.UserDepartmentHead,
		models.UserMunicipalAdmin,
	)
}

func CurrentSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}

// SetSession is used by handlers and tests that establish a session without
// a token.
func SetSession(c *gin.Context, sess models.Session) {
	c.Set(sessionKey, sess)
}
