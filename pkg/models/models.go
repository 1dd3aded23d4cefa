package models

import (
	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/arnavshah/standup-api-go/pkg/standup"
)

// PairingInput is the body of the stateless pairing endpoint
type PairingInput struct {
	Date   string          `json:"date"`
	Roster rotation.Roster `json:"roster"`
	Absent []string        `json:"absent"`
}

// WeekResponse holds Monday through Friday of one ISO week
type WeekResponse struct {
	ISOWeek int                    `json:"iso_week"`
	Days    []*rotation.Assignment `json:"days"`
}

// StandupInput is the body of the standup upsert endpoint
type StandupInput struct {
	Person      string `json:"person" binding:"required"`
	Team        string `json:"team" binding:"required"`
	StandupDate string `json:"standup_date"`
	Yesterday   string `json:"yesterday"`
	Today       string `json:"today"`
	Blockers    string `json:"blockers"`
	Wildcard    string `json:"wildcard"`
}

// StandupBoard is the standup entries of one date grouped by team
type StandupBoard struct {
	Date   string              `json:"date"`
	Count  int                 `json:"count"`
	Groups []standup.TeamGroup `json:"groups"`
}

type MemberInput struct {
	Name string `json:"name" binding:"required"`
	Team string `json:"team" binding:"required"`
}

type AbsenceInput struct {
	Member string `json:"member" binding:"required"`
	Date   string `json:"date"`
}

type QuestionInput struct {
	Question string   `json:"question" binding:"required"`
	Answer   *float64 `json:"answer" binding:"required"`
}

type GuessInput struct {
	Name  string   `json:"name" binding:"required"`
	Guess *float64 `json:"guess" binding:"required"`
}

// QuestionResults is the scoring of the current guesses against one question
type QuestionResults struct {
	Question    guess.Question `json:"question"`
	Closest     *guess.Result  `json:"closest,omitempty"`
	Farthest    *guess.Result  `json:"farthest,omitempty"`
	Leaderboard []guess.Result `json:"leaderboard"`
}

// SpinInput is the body of the wheel endpoint. Without names the wheel holds
// the members present on Date.
type SpinInput struct {
	Names    []string `json:"names"`
	Rotation float64  `json:"rotation"`
	Date     string   `json:"date"`
}
