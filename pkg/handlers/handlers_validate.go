package handlers

import (
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a roster and absentee list and reports the pairing size.
// Problems are reported in the body with status 200. An empty roster is valid.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.PairingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	date, err := h.parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	a, err := rotation.Assign(date, input.Roster, input.Absent)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"team_count":    len(input.Roster),
			"member_count":  len(input.Roster.Members()),
			"present_count": len(a.Present),
			"pair_count":    len(a.Pairs),
		},
	})
}
