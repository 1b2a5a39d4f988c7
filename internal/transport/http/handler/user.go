package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Persona  string `json:"persona"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user data")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), app.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Persona:  req.Persona,
	})
	if err != nil {
		writeServiceError(c, err, "invalid user data", "failed to create user")
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch user")
		return
	}
	response.OK(c, user)
}
