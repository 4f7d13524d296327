package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xener/energy-api/models"
	"github.com/xener/energy-api/storage"
	"github.com/xener/energy-api/utils"
)

type AuthHandler struct {
	Store      storage.Storage
	DemoUserID int
}

// Login upserts a user by their identity-provider uid and issues tokens.
// This is the contract the mobile client already speaks: it signs in with
// the provider and posts uid/email/name here.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByFirebaseUID(req.FirebaseUID)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = h.Store.CreateUser(models.User{
			FirebaseUID: req.FirebaseUID,
			Email:       req.Email,
			Name:        req.Name,
			EnergyScore: 50,
		})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.respondWithTokens(c, http.StatusOK, *user)
}

// DemoLogin signs in as the seeded demo user. Only available in demo mode.
func (h *AuthHandler) DemoLogin(c *gin.Context) {
	if h.DemoUserID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demo mode is not enabled"})
		return
	}

	user, err := h.Store.GetUser(h.DemoUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Demo user unavailable"})
		return
	}

	h.respondWithTokens(c, http.StatusOK, *user)
}

// Signup registers a user with the local email/password provider.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Store.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := h.Store.CreateUser(models.User{
		Email:        req.Email,
		Name:         req.Name,
		EnergyScore:  50,
		PasswordHash: passwordHash,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.respondWithTokens(c, http.StatusCreated, *user)
}

// PasswordLogin authenticates a local-provider user, enforcing 2FA when the
// account has it enabled.
func (h *AuthHandler) PasswordLogin(c *gin.Context) {
	var req models.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByEmail(req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if user.PasswordHash == "" || !utils.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "2FA code required", "requires_2fa": true})
			return
		}
		valid, err := utils.VerifyTOTP(user.TOTPSecret, req.TOTPCode)
		if err != nil || !valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid 2FA code"})
			return
		}
	}

	h.respondWithTokens(c, http.StatusOK, *user)
}

func (h *AuthHandler) respondWithTokens(c *gin.Context, status int, user models.User) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: utils.GenerateRefreshToken(),
	})
}
