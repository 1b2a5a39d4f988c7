package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/model"
	"intelimed/internal/transport/http/response"
)

type MedicationHandler struct {
	medicationService *app.MedicationService
}

type CreateMedicationRequest struct {
	UserID    string     `json:"userId" binding:"required"`
	Name      string     `json:"name" binding:"required"`
	Dosage    string     `json:"dosage" binding:"required"`
	Frequency string     `json:"frequency" binding:"required"`
	Times     []string   `json:"times"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	Active    *bool      `json:"active"`
}

func NewMedicationHandler(medicationService *app.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

func (h *MedicationHandler) Create(c *gin.Context) {
	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid medication data")
		return
	}

	medication, err := h.medicationService.Create(c.Request.Context(), app.CreateMedicationInput{
		UserID:    req.UserID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
	})
	if err != nil {
		writeServiceError(c, err, "invalid medication data", "failed to create medication")
		return
	}
	response.OK(c, medication)
}

func (h *MedicationHandler) ListActive(c *gin.Context) {
	meds, err := h.medicationService.ListActive(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch medications")
		return
	}
	response.OK(c, meds)
}

func (h *MedicationHandler) Update(c *gin.Context) {
	var patch model.MedicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid medication data")
		return
	}

	medication, err := h.medicationService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err, "invalid medication data", "failed to update medication")
		return
	}
	response.OK(c, medication)
}

func (h *MedicationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.medicationService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "invalid medication id", "failed to delete medication")
		return
	}
	response.OK(c, gin.H{"deletedId": id})
}

// Reminders accepts an optional ?window= look-ahead in minutes.
func (h *MedicationHandler) Reminders(c *gin.Context) {
	window := app.DefaultReminderWindow
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 24*60 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid reminder window")
			return
		}
		window = parsed
	}

	schedule, err := h.medicationService.Reminders(c.Request.Context(), c.Param("userId"), window)
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to compute medication reminders")
		return
	}
	response.OK(c, schedule)
}
