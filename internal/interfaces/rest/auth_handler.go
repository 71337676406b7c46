package rest

import (
	"net/http"
	"time"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svcMgr *services.ServiceManager
}

func NewAuthHandler(svcMgr *services.ServiceManager) *AuthHandler {
	return &AuthHandler{
		svcMgr: svcMgr,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	UserCode string `json:"user_code" binding:"required"`
	Password string `json:"password"`
}

// SignupRequest represents signup request body
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	UserCode string `json:"user_code" binding:"required"`
	Password string `json:"password"`
}

func (h *AuthHandler) clientInfo(c *gin.Context) services.ClientInfo {
	return services.ClientInfo{IPAddress: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, result *services.LoginResult) {
	perms := h.svcMgr.Permissions.Permissions(result.User.ToSession())
	c.JSON(status, gin.H{
		constants.ResponseSuccess: true,
		"token":                   result.Token,
		constants.ResponseUser:    result.User,
		"permissions":             perms,
		"expires_at":              result.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.svcMgr.Auth.Login(c.Request.Context(), req.UserCode, req.Password, h.clientInfo(c))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	h.respondSession(c, http.StatusOK, result)
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.svcMgr.Auth.Signup(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		UserCode: req.UserCode,
		Password: req.Password,
	}, h.clientInfo(c))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	h.respondSession(c, http.StatusCreated, result)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	HandleDeleteEnvelope(c, "Logged out successfully", func() error {
		return h.svcMgr.Auth.Logout(c.Request.Context(), GetUserFromContext(c))
	})
}

// GetMe handles GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, perms, err := h.svcMgr.Auth.Me(c.Request.Context(), GetUserFromContext(c))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.ResponseUser: user,
		"permissions":          perms,
	})
}

// GetUsers handles GET /api/auth/users
func (h *AuthHandler) GetUsers(c *gin.Context) {
	HandleGetEnvelope(c, constants.ResponseUsers, func() (interface{}, error) {
		return h.svcMgr.Auth.ListUsers(c.Request.Context(), GetUserFromContext(c))
	})
}
