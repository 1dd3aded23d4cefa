package handlers

import (
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.Roster.ListMembers()
	if err != nil {
		h.fail(c, "list members", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *Handler) AddMember(c *gin.Context) {
	var input models.MemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	m, err := h.Roster.AddMember(input.Name, input.Team)
	if err != nil {
		h.fail(c, "add member", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.Roster.RemoveMember(c.Param("name")); err != nil {
		h.fail(c, "remove member", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// ListAbsences returns who is away on ?date= (default today)
func (h *Handler) ListAbsences(c *gin.Context) {
	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		h.fail(c, "list absences", err)
		return
	}

	day := date.Format(dateLayout)
	absent, err := h.Roster.Absentees(day)
	if err != nil {
		h.fail(c, "list absences", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": day, "absent": absent})
}

func (h *Handler) MarkAbsent(c *gin.Context) {
	var input models.AbsenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, err)
		return
	}

	date, err := h.parseDate(input.Date)
	if err != nil {
		h.fail(c, "mark absent", err)
		return
	}

	day := date.Format(dateLayout)
	if err := h.Roster.MarkAbsent(input.Member, day); err != nil {
		h.fail(c, "mark absent", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": input.Member, "date": day})
}

// ClearAbsent removes the absence named by ?member=&date=
func (h *Handler) ClearAbsent(c *gin.Context) {
	member := c.Query("member")
	if member == "" {
		writeError(c, http.StatusBadRequest, APIError{Code: BadRequest.Code, Message: "member is required"})
		return
	}

	date, err := h.parseDate(c.Query("date"))
	if err != nil {
		h.fail(c, "clear absent", err)
		return
	}

	if err := h.Roster.ClearAbsent(member, date.Format(dateLayout)); err != nil {
		h.fail(c, "clear absent", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Absence cleared"})
}
