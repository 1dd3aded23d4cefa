package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/arnavshah/standup-api-go/pkg/wheel"
	"github.com/gin-gonic/gin"
)

// SpinWheel picks a name. Without names in the body the wheel holds the
// members present on the given date.
func (h *Handler) SpinWheel(c *gin.Context) {
	var input models.SpinInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}

	names := input.Names
	if len(names) == 0 {
		date, err := h.parseDate(input.Date)
		if err != nil {
			h.fail(c, "spin wheel", err)
			return
		}
		a, err := h.assignStored(date)
		if err != nil {
			h.fail(c, "spin wheel", err)
			return
		}
		names = a.Present
	}

	res, err := wheel.Spin(names, input.Rotation, h.NewRand())
	if err != nil {
		h.fail(c, "spin wheel", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
