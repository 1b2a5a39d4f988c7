package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"intelimed/internal/app"
	"intelimed/internal/transport/http/response"
)

type FacilityHandler struct {
	facilityService *app.FacilityService
}

func NewFacilityHandler(facilityService *app.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilityService: facilityService}
}

func (h *FacilityHandler) List(c *gin.Context) {
	response.OK(c, h.facilityService.List(c.DefaultQuery("type", app.FacilityTypeAll)))
}

func (h *FacilityHandler) Nearby(c *gin.Context) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" || lngRaw == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "latitude and longitude are required")
		return
	}
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid coordinates")
		return
	}

	radius := app.DefaultSearchRadius
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid radius")
			return
		}
		radius = parsed
	}

	response.OK(c, h.facilityService.Nearby(app.LatLng{Lat: lat, Lng: lng}, radius, c.Query("type")))
}

func (h *FacilityHandler) Details(c *gin.Context) {
	response.OK(c, h.facilityService.Details(c.Param("placeId")))
}
