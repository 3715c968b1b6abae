package controllers

import (
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// AuthController serves registration, login and the caller's own profile
type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// userSummary is the user block returned on registration
type userSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Register creates an account and returns a token for it
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Created(c, gin.H{
		"status":  "ok",
		"message": utils.MsgRegisterSuccess,
		"token":   result.Token,
		"user": userSummary{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
			Role:     result.User.Role,
		},
	})
}

// Login exchanges credentials for a token
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.OK(c, gin.H{
		"token":    result.Token,
		"username": result.User.Username,
		"role":     result.User.Role,
	})
}

// GetProfile returns the authenticated user without the password hash
func (ac *AuthController) GetProfile(c *gin.Context) {
	user, err := ac.users.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, user)
}

// UpdateProfile changes the authenticated user's own fields
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), services.ProfileUpdate{
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.OK(c, gin.H{
		"message": utils.MsgProfileUpdated,
		"user":    user,
	})
}

// ChangePassword replaces the authenticated user's password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ac.auth.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, gin.H{"message": utils.MsgPasswordChanged})
}
