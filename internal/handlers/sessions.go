package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/f1stly/call-signaling/internal/signaling"
)

// ListSessions returns the identities currently online. Requires a JWT
// from /api/auth/login.
func ListSessions(coord *signaling.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identities := coord.Registry().Identities()
		c.JSON(http.StatusOK, gin.H{
			"count":      len(identities),
			"identities": identities,
		})
	}
}
