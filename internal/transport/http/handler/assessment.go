package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/transport/http/response"
)

type AssessmentHandler struct {
	assessmentService *app.AssessmentService
}

type SubmitAssessmentRequest struct {
	UserID    string                 `json:"userId" binding:"required"`
	Responses map[string]interface{} `json:"responses" binding:"required"`
}

func NewAssessmentHandler(assessmentService *app.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid health assessment data")
		return
	}

	result, err := h.assessmentService.Submit(c.Request.Context(), app.SubmitAssessmentInput{
		UserID:    req.UserID,
		Responses: req.Responses,
	})
	if err != nil {
		writeServiceError(c, err, "invalid health assessment data", "failed to create health assessment")
		return
	}
	response.OK(c, result)
}

func (h *AssessmentHandler) ListByUser(c *gin.Context) {
	items, err := h.assessmentService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch health assessments")
		return
	}
	response.OK(c, items)
}
