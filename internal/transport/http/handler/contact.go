package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/model"
	"intelimed/internal/transport/http/response"
)

type ContactHandler struct {
	contactService *app.EmergencyContactService
}

type CreateContactRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	IsPrimary    bool   `json:"isPrimary"`
}

func NewContactHandler(contactService *app.EmergencyContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid emergency contact data")
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), app.CreateContactInput{
		UserID:       req.UserID,
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		IsPrimary:    req.IsPrimary,
	})
	if err != nil {
		writeServiceError(c, err, "invalid emergency contact data", "failed to create emergency contact")
		return
	}
	response.OK(c, contact)
}

func (h *ContactHandler) ListByUser(c *gin.Context) {
	contacts, err := h.contactService.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeServiceError(c, err, "invalid user id", "failed to fetch emergency contacts")
		return
	}
	response.OK(c, contacts)
}

func (h *ContactHandler) Update(c *gin.Context) {
	var patch model.EmergencyContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid emergency contact data")
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeServiceError(c, err, "invalid emergency contact data", "failed to update emergency contact")
		return
	}
	response.OK(c, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "invalid emergency contact id", "failed to delete emergency contact")
		return
	}
	response.OK(c, gin.H{"deletedId": id})
}
