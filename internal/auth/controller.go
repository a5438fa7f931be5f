package auth

import (
	"errors"
	"net/http"

	"matchday/internal/shared/utils/response"
	"matchday/internal/users"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Register handles POST /api/v1/auth/register
func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	authResp, err := ctrl.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.RespondJSON(c, "error", http.StatusConflict, "User already exists", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Registration failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "User registered successfully", authResp, nil)
}

// Login handles POST /api/v1/auth/login
func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	authResp, err := ctrl.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Login failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Login successful", authResp, nil)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (ctrl *Controller) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	tokenPair, err := ctrl.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, users.ErrUserNotFound) {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid refresh token", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Token refresh failed", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Token refreshed", tokenPair, nil)
}
