package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"
	"MediBook/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService    services.UserService
	ProfileService *services.ProfileService
}

func NewAuthHandler(userService services.UserService, profileService *services.ProfileService) *AuthHandler {
	return &AuthHandler{
		UserService:    userService,
		ProfileService: profileService,
	}
}

// Register handles new account signup and creates the role profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Registration failed: %v", err)})
		return
	}
	c.JSON(201, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

// Login authenticates the user and sets the session cookies.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.UserService.Authenticate(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}
	utils.SetAuthCookies(c, accessToken, refreshToken)

	c.JSON(200, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"accessToken": accessToken,
	})
}

// Logoff clears the session cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(http.StatusNoContent)
}

// GetSession is the current-session provider: it returns the acting user and
// their profile so dashboards can initialize without ambient state.
func (h *AuthHandler) GetSession(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "Session not found"})
		return
	}

	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := h.ProfileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"profile": profile,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		c.JSON(401, gin.H{"error": "Missing refresh token"})
		return
	}

	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate token: %v", err)})
		return
	}
	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{"accessToken": accessToken})
}

// SendResetCode emails a password reset code to the given address.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.SendResetCode(c.Request.Context(), body.Email); err != nil {
		c.JSON(500, gin.H{"error": "Failed to send reset code"})
		return
	}
	c.JSON(200, gin.H{"message": "If the email is registered, a reset code has been sent"})
}

// ChangePassword resets the password using an emailed code.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var body struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.UserService.ResetPassword(c.Request.Context(), body.Email, body.ResetCode, body.NewPassword); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Password reset failed: %v", err)})
		return
	}
	c.JSON(200, gin.H{"message": "Password updated"})
}
