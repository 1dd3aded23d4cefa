package handlers

import (
	"errors"
	"net/http"

	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/roster"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/arnavshah/standup-api-go/pkg/standup"
	"github.com/arnavshah/standup-api-go/pkg/wheel"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errBadDate = errors.New("date must be formatted as YYYY-MM-DD")

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrResponse struct {
	Error APIError `json:"error"`
}

var (
	BadRequest = APIError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request body",
	}
	Unauthorized = APIError{
		Code:    "UNAUTHORIZED",
		Message: "unauthorized request",
	}
	RateLimited = APIError{
		Code:    "RATE_LIMITED",
		Message: "daily request limit reached for this API key",
	}
	NotFound = APIError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	InternalServerError = APIError{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "internal server error",
	}
)

// mapError translates domain errors into a status and a stable error code.
// Client errors carry the underlying message so callers can fix their input.
func mapError(err error) (int, APIError) {
	withMsg := func(code string) APIError {
		return APIError{Code: code, Message: err.Error()}
	}

	switch {
	case errors.Is(err, rotation.ErrInvalidDate),
		errors.Is(err, rotation.ErrEmptyTeamName),
		errors.Is(err, rotation.ErrEmptyMemberName),
		errors.Is(err, rotation.ErrDuplicateMember),
		errors.Is(err, rotation.ErrUnknownAbsentee):
		return http.StatusBadRequest, withMsg("INVALID_ROSTER")

	case errors.Is(err, errBadDate),
		errors.Is(err, roster.ErrInvalidDate),
		errors.Is(err, standup.ErrInvalidDate):
		return http.StatusBadRequest, withMsg("INVALID_DATE")

	case errors.Is(err, roster.ErrInvalidMember),
		errors.Is(err, standup.ErrPersonRequired),
		errors.Is(err, standup.ErrTeamRequired),
		errors.Is(err, guess.ErrQuestionRequired),
		errors.Is(err, guess.ErrNameRequired),
		errors.Is(err, guess.ErrInvalidGuessValue),
		errors.Is(err, wheel.ErrNoNames):
		return http.StatusBadRequest, withMsg("INVALID_REQUEST")

	case errors.Is(err, roster.ErrMemberExists):
		return http.StatusConflict, withMsg("MEMBER_EXISTS")

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, withMsg("CONFLICT")

	case errors.Is(err, roster.ErrMemberNotFound),
		errors.Is(err, guess.ErrQuestionNotFound),
		errors.Is(err, guess.ErrNoActiveQuestion),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, withMsg("NOT_FOUND")

	default:
		return http.StatusInternalServerError, InternalServerError
	}
}

func writeError(c *gin.Context, status int, apiErr APIError) {
	c.AbortWithStatusJSON(status, ErrResponse{Error: apiErr})
}

// fail writes the mapped error response and logs it at a level matching its status
func (h *Handler) fail(c *gin.Context, op string, err error) {
	status, apiErr := mapError(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Errorw(op+" failed", "err", err)
	} else {
		h.Logger.Warnw(op+" rejected", "err", err)
	}
	writeError(c, status, apiErr)
}

// badRequest answers a request whose body could not be bound
func (h *Handler) badRequest(c *gin.Context, err error) {
	h.Logger.Warnw("error parsing request", "path", c.FullPath(), "error", err)
	writeError(c, http.StatusBadRequest, BadRequest)
}
