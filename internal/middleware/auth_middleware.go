package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// ContextUserKey is where RequireAuth stores the current user
const ContextUserKey = "currentUser"

// AuthMiddleware guards routes on the local session
type AuthMiddleware struct {
	session *services.SessionStore
	now     func() time.Time
	logger  zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(session *services.SessionStore, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		session: session,
		now:     time.Now,
		logger:  logger,
	}
}

// RequireAuth lets only authenticated requests through. An expired backend
// token ends the session first. Anonymous page loads are redirected to the
// login page; other requests get a 401 carrying the same redirect.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expired := false
		if m.session.IsAuthenticated() && m.session.TokenExpired(m.now()) {
			m.logger.Info().Msg("Backend token expired, logging out")
			m.session.Logout(c.Request.Context())
			expired = true
		}

		user, ok := m.session.CurrentUser()
		if !ok {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusSeeOther, services.RouteLogin)
				c.Abort()
				return
			}

			err := apperrors.ErrNotAuthenticated
			if expired {
				err = apperrors.ErrTokenExpired
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged-in users away from the login and
// signup pages
func (m *AuthMiddleware) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && m.session.IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, services.RouteHome)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user RequireAuth stored on the context
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
