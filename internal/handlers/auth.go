package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mtogo/auth/internal/middleware"
	"mtogo/auth/internal/models"
	"mtogo/auth/internal/service"
	"mtogo/auth/internal/session"
)

type loginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type loginFunc func(c *gin.Context, input service.LoginInput) (service.LoginResult, error)

func (h HandlerSet) CustomerLogin(c *gin.Context) {
	h.login(c, func(c *gin.Context, in service.LoginInput) (service.LoginResult, error) {
		return h.auth.CustomerLogin(c.Request.Context(), in)
	}, nil)
}

func (h HandlerSet) RestaurantLogin(c *gin.Context) {
	h.login(c, func(c *gin.Context, in service.LoginInput) (service.LoginResult, error) {
		return h.auth.RestaurantLogin(c.Request.Context(), in)
	}, func(res service.LoginResult) gin.H {
		return gin.H{"restaurantId": res.PrincipalID}
	})
}

func (h HandlerSet) ManagementLogin(c *gin.Context) {
	h.login(c, func(c *gin.Context, in service.LoginInput) (service.LoginResult, error) {
		return h.auth.ManagementLogin(c.Request.Context(), in)
	}, nil)
}

func (h HandlerSet) login(c *gin.Context, fn loginFunc, extra func(service.LoginResult) gin.H) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	result, err := fn(c, service.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		RememberMe:    req.RememberMe,
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		h.internalError(c, err, "login failed")
		return
	}

	session.SetCookie(c.Writer, result.Session.Token, result.Session.TTL, h.cookie)

	resp := gin.H{"message": "Login successful!"}
	if extra != nil {
		for k, v := range extra(result) {
			resp[k] = v
		}
	}
	c.JSON(http.StatusOK, resp)
}

type validateRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (h HandlerSet) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired session"})
		return
	}

	identity, err := h.auth.Validate(c.Request.Context(), req.SessionID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session is valid",
		"email":   identity.Email,
		"userId":  identity.PrincipalID,
		"role":    identity.Role,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	token := session.TokenFromRequest(c.Request, h.cookie)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Session token is missing"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token, middleware.GetCorrelationID(c)); err != nil {
		h.writeSessionError(c, err)
		return
	}

	session.ClearCookie(c.Writer, h.cookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h HandlerSet) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidOrExpiredSession):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
	case errors.Is(err, session.ErrMalformedSession):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid session data"})
	default:
		h.internalError(c, err, "session store failure")
	}
}

type identityResponse struct {
	Email     string      `json:"email"`
	UserID    string      `json:"userId"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func toIdentityResponse(identity session.Identity) identityResponse {
	return identityResponse{
		Email:     identity.Email,
		UserID:    identity.PrincipalID,
		Role:      identity.Role,
		CreatedAt: identity.CreatedAt,
	}
}

func (h HandlerSet) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": toIdentityResponse(identity)})
}
