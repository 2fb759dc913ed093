package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-backend/internal/shared/server/middleware"
	"contract-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the unauthenticated auth endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.GET("/me", h.me)
}

type signupRequest struct {
	LoginID  string `json:"loginId"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Signup(c.Request.Context(), req.LoginID, req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_request", "login id, user name, and a password of at least 4 characters are required", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate_login_id", "login id already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":       user.ID,
		"loginId":  user.LoginID,
		"userName": user.UserName,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid login id or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	respond.OK(c, gin.H{
		"token":    token,
		"userName": user.UserName,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
