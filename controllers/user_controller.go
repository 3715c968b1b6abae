package controllers

import (
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// UserController serves the admin client management endpoints
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type CreateClientRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

type UpdateClientRequest struct {
	Username    *string  `json:"username"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	AvatarURL   *string  `json:"avatar_url"`
	TotalOrders *int     `json:"total_orders" binding:"omitempty,min=0"`
	TotalSpent  *float64 `json:"total_spent" binding:"omitempty,min=0"`
	Password    *string  `json:"password"`
}

// ListClients returns every client account, newest first
func (uc *UserController) ListClients(c *gin.Context) {
	clients, err := uc.users.ListClients(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, clients)
}

// CreateClient adds a client account on behalf of an admin
func (uc *UserController) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.users.CreateClient(c.Request.Context(), services.ClientCreate{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, user)
}

// UpdateClient edits a client account
func (uc *UserController) UpdateClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.users.UpdateClient(c.Request.Context(), id, services.ClientUpdate{
		Username:    req.Username,
		Email:       req.Email,
		Phone:       req.Phone,
		AvatarURL:   req.AvatarURL,
		TotalOrders: req.TotalOrders,
		TotalSpent:  req.TotalSpent,
		Password:    req.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, user)
}

// DeleteUser removes any user account
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := uc.users.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, utils.MsgDeleteSuccess)
}
