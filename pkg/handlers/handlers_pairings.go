package handlers

import (
	"net/http"
	"time"

	"github.com/arnavshah/standup-api-go/internal/metrics"
	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/gin-gonic/gin"
)

// assignStored computes the assignment for date from the stored roster and absences
func (h *Handler) assignStored(date time.Time) (*rotation.Assignment, error) {
	r, err := h.Roster.Roster()
	if err != nil {
		return nil, err
	}
	absent, err := h.Roster.Absentees(date.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	a, err := rotation.Assign(date, r, absent)
	present := 0
	if a != nil {
		present = len(a.Present)
	}
	metrics.ObservePairing("stored", present, err)
	return a, err
}

// GetPairings returns who reads whom for ?date= (default today)
func (h *Handler) GetPairings(c *gin.Context) {
	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		h.fail(c, "get pairings", err)
		return
	}

	a, err := h.assignStored(date)
	if err != nil {
		h.fail(c, "get pairings", err)
		return
	}

	noteUsage(c, len(a.Present), len(a.Pairs))
	c.JSON(http.StatusOK, a)
}

// GetWeekPairings returns Monday through Friday of the ISO week containing ?date=.
// Absences are applied per day.
func (h *Handler) GetWeekPairings(c *gin.Context) {
	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		h.fail(c, "get week pairings", err)
		return
	}

	resp := models.WeekResponse{ISOWeek: rotation.ISOWeek(date)}
	members, pairs := 0, 0
	for _, day := range rotation.WeekDays(date) {
		a, err := h.assignStored(day)
		if err != nil {
			h.fail(c, "get week pairings", err)
			return
		}
		members += len(a.Present)
		pairs += len(a.Pairs)
		resp.Days = append(resp.Days, a)
	}

	noteUsage(c, members, pairs)
	c.JSON(http.StatusOK, resp)
}

// CreatePairings computes an assignment for a roster supplied in the body
func (h *Handler) CreatePairings(c *gin.Context) {
	var input models.PairingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	date, err := h.parseDate(input.Date)
	if err != nil {
		h.fail(c, "create pairings", err)
		return
	}

	a, err := rotation.Assign(date, input.Roster, input.Absent)
	if err != nil {
		metrics.ObservePairing("inline", 0, err)
		h.fail(c, "create pairings", err)
		return
	}
	metrics.ObservePairing("inline", len(a.Present), nil)

	noteUsage(c, len(a.Present), len(a.Pairs))
	c.JSON(http.StatusOK, a)
}
