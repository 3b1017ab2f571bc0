package handlers

import (
	"net/http"

	dom "github.com/YukiKuroshima/Team-Large/internal/domain"
	"github.com/YukiKuroshima/Team-Large/internal/dto"
	"github.com/YukiKuroshima/Team-Large/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles the JSON user API.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler returns a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create godoc
// @Summary      Add a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddUserRequest  true  "Username and email"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Status: dto.StatusFail, Message: "Invalid payload."})
		return
	}
	u, err := h.svc.AddMember(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		if err == service.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Status: dto.StatusFail, Message: "Sorry. That email already exists."})
			return
		}
		// Covers the empty payload, the race-lost insert and any store failure.
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Status: dto.StatusFail, Message: "Invalid payload."})
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Status: dto.StatusSuccess, Message: u.Email + " was added!"})
}

// List godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.ListUsersResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Status: dto.StatusFail, Message: "Invalid payload."})
		return
	}
	c.JSON(http.StatusOK, dto.ListUsersResponse{
		Status: dto.StatusSuccess,
		Data:   dto.UsersData{Users: usersToResponses(list)},
	})
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i, u := range list {
		out[i] = dto.UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		}
	}
	return out
}
