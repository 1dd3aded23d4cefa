package handlers

import (
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/arnavshah/standup-api-go/pkg/standup"
	"github.com/gin-gonic/gin"
)

// GetStandups returns the standup board for ?date= grouped in team order
func (h *Handler) GetStandups(c *gin.Context) {
	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		h.fail(c, "get standups", err)
		return
	}

	day := date.Format(dateLayout)
	entries, err := h.Standups.ListForDate(day)
	if err != nil {
		h.fail(c, "get standups", err)
		return
	}

	groups := standup.GroupByTeam(entries, h.TeamOrder)
	if groups == nil {
		groups = []standup.TeamGroup{}
	}
	c.JSON(http.StatusOK, models.StandupBoard{
		Date:   day,
		Count:  len(entries),
		Groups: groups,
	})
}

// SaveStandup creates or replaces one person's entry for a date
func (h *Handler) SaveStandup(c *gin.Context) {
	var input models.StandupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	date, err := h.parseDate(input.StandupDate)
	if err != nil {
		h.fail(c, "save standup", err)
		return
	}

	entry, err := h.Standups.Upsert(standup.EntryInput{
		Person:      input.Person,
		Team:        input.Team,
		StandupDate: date.Format(dateLayout),
		Yesterday:   input.Yesterday,
		Today:       input.Today,
		Blockers:    input.Blockers,
		Wildcard:    input.Wildcard,
	})
	if err != nil {
		h.fail(c, "save standup", err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
