package controllers

import (
	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required,max=15"`
	OTP      string `json:"otp" binding:"required"`
	FullName string `json:"full_name" binding:"max=255"`
}

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := a.Svc.Login(c.Request.Context(), req.Mobile, req.OTP, req.FullName)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"token":      out.Token,
		"expires_at": out.ExpiresAt,
		"user":       out.User,
		"message":    "Login successful",
	})
}

// POST /auth/logout (ต้อง login)
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.Svc.Logout(c.Request.Context(), utils.CurrentSessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Logout successful"})
}

// GET /auth/user (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	u, err := a.Svc.CurrentUser(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, u)
}

// PATCH /auth/user (ต้อง login)
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := a.Svc.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "display_name": u.DisplayName()})
}
