package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/model"
	"intelimed/internal/transport/http/response"
)

type GoalHandler struct {
	goalService *app.HealthGoalService
}

type CreateGoalRequest struct {
	UserID       string  `json:"userId" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Description  *string `json:"description"`
	TargetValue  *int    `json:"targetValue"`
	CurrentValue int     `json:"currentValue"`
	Unit         *string `json:"unit"`
	Completed    bool    `json:"completed"`
}

func NewGoalHandler(goalService *app.HealthGoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid health goal data")
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), app.CreateGoalInput{
		UserID:       req.UserID,
		Title:        req.Title,
		Description:  req.Description,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Completed:    req.Completed,
	})
	if err != nil {
		writeServiceError(c, err, "invalid health goal data", "failed to create health goal")
		return
	}
	response.OK(c, goal)
}

func (h *GoalHandler) ListByUser(c *gin.Context) {
	goals, err := h.goalService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch health goals")
		return
	}
	response.OK(c, goals)
}

func (h *GoalHandler) Update(c *gin.Context) {
	var patch model.HealthGoalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid health goal data")
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err, "invalid health goal data", "failed to update health goal")
		return
	}
	response.OK(c, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.goalService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "invalid health goal id", "failed to delete health goal")
		return
	}
	response.OK(c, gin.H{"deletedId": id})
}
