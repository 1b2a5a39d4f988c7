package handler

import (
	"github.com/gin-gonic/gin"

	"intelimed/internal/persona"
	"intelimed/internal/transport/http/response"
)

func ListPersonas(c *gin.Context) {
	response.OK(c, persona.All())
}
