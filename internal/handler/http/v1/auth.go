package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/urban_eye/internal/service"
	"github.com/shenikar/urban_eye/internal/session"
)

const authCookieName = "auth_token"

// sessionToken достает токен из Authorization: Bearer или cookie auth_token
func sessionToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token, err := c.Cookie(authCookieName); err == nil {
		return token
	}
	return ""
}

// SessionMiddleware кладет пользователя сессии в контекст запроса.
// Невалидный токен означает анонимного зрителя, а не ошибку.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := h.services.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.logger.WithError(err).Debug("Ignoring invalid session token")
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// RequireSession - middleware для маршрутов, доступных только после входа
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if viewer(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: service.ErrAuthRequired.Error(), Redirect: authRedirect})
			return
		}
		c.Next()
	}
}

// @Summary Register a new user
// @Description Create an account with name, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration request"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToUserResponse(user))
}

// @Summary Log in
// @Description Exchange email and password for a session token. The token is also set as the auth_token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, token, err := h.services.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, int(h.cfg.SessionTTL.Seconds()), "/", h.cfg.CookieDomain, h.cfg.IsProduction(), true)
	c.JSON(http.StatusOK, SessionResponse{User: *ModelToUserResponse(user), Token: token})
}

// @Summary Log out
// @Description Revoke the current session token and clear the cookie
// @Tags Auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")

	if token := sessionToken(c); token != "" {
		if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
			h.respondError(c, log, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction(), true)
	c.Status(http.StatusNoContent)
}

// @Summary Current session
// @Description Get the user of the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse "Login required"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, ModelToUserResponse(viewer(c)))
}
