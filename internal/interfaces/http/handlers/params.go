package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDQuery reads and parses the userId query parameter.
func userIDQuery(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
