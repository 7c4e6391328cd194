package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetmate/internal/middleware"
	"budgetmate/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
	log *slog.Logger
}

type SignupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginReq.Email holds either an email or a display name.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleReq struct {
	IDToken string `json:"id_token"`
}

type UpdateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type CreateAdminReq struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func NewAuthHandler(svc *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) signedIn(c *gin.Context, status int, message string, res *service.AuthResult) {
	c.JSON(status, gin.H{
		"message":      message,
		"user":         res.User,
		"token":        res.Pair.AccessToken,
		"refreshToken": res.Pair.RefreshToken,
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	res, err := h.svc.Signup(c.Request.Context(), service.SignupInput{Email: req.Email, Password: req.Password, Username: req.Username})
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	h.signedIn(c, http.StatusCreated, "Signup successful", res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	h.signedIn(c, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) Google(c *gin.Context) {
	var req GoogleReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	res, err := h.svc.Google(c.Request.Context(), req.IDToken)
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	h.signedIn(c, http.StatusOK, "Google login successful", res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.Identity(c)); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	me, err := h.svc.Profile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": me})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	me, err := h.svc.UpdateProfile(c.Request.Context(), middleware.Identity(c), req.Name, req.Email)
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": me})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	err := h.svc.ChangePassword(c.Request.Context(), middleware.Identity(c), req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	admin, err := h.svc.CreateAdmin(c.Request.Context(), service.AdminInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin user created successfully", "user": admin})
}

// TokenRefresh exchanges a refresh token for a new pair.
func (h *AuthHandler) TokenRefresh(c *gin.Context) {
	var req RefreshReq
	if err := bind(c, &req); err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, h.log, messageKey, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
