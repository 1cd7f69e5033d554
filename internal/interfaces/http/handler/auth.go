package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/domain/identity"
	"github.com/sooquk/dashboard/internal/infrastructure/auth"
	"github.com/sooquk/dashboard/internal/infrastructure/logger"
	"github.com/sooquk/dashboard/internal/infrastructure/memdb"
	"github.com/sooquk/dashboard/internal/interfaces/http/middleware"
)

// LoginPath is served without a token
const LoginPath = "/auth/login"

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(input auth.IssueInput) (*auth.Token, error)
}

// AuthHandler signs users in
type AuthHandler struct {
	BaseHandler
	db     *memdb.DB
	tokens TokenIssuer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(db *memdb.DB, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the login result
type LoginResponse struct {
	Token *auth.Token   `json:"token"`
	User  identity.User `json:"user"`
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST(LoginPath, h.Login)
	rg.GET("/auth/me", h.Me)
}

// Login exchanges email and password for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	u, err := h.db.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.GetGinLogger(c).Info("Login rejected", zap.String("email", req.Email))
		h.HandleError(c, err)
		return
	}
	tok, err := h.tokens.Issue(auth.IssueInput{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.FullName(),
		Role:   u.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, LoginResponse{Token: tok, User: u})
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := h.db.Users.Get(middleware.GetJWTUserID(c))
	if !ok {
		h.Unauthorized(c, "User no longer exists")
		return
	}
	h.Success(c, u)
}
