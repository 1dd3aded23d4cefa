package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/arnavshah/standup-api-go/pkg/auth"
	"github.com/arnavshah/standup-api-go/pkg/database"
	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/models"
	"github.com/arnavshah/standup-api-go/pkg/roster"
	"github.com/arnavshah/standup-api-go/pkg/rotation"
	"github.com/arnavshah/standup-api-go/pkg/wheel"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testServer struct {
	h      *Handler
	router *gin.Engine
	admin  string
	key    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("", filepath.Join(t.TempDir(), "standup.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	h := New(zap.NewNop().Sugar(), db, auth.New("jwt-secret", "master-secret"), []string{"Core", "AI"})
	h.Now = func() time.Time { return time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC) }
	h.NewRand = func() *rand.Rand { return rand.New(rand.NewSource(7)) }

	r := gin.New()
	h.Register(r)

	token, err := h.Auth.CreateToken("admin")
	require.NoError(t, err)

	return &testServer{
		h:      h,
		router: r,
		admin:  token,
		key:    h.Auth.GenerateHMACKey("standup-bot"),
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) seed(t *testing.T, team string, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := s.h.Roster.AddMember(n, team)
		require.NoError(t, err)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestGetPairings_StoredRoster(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "Core", "Alice", "Bob", "Carol")

	w := s.do(t, http.MethodGet, "/api/pairings?date=2024-01-01", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var a rotation.Assignment
	decode(t, w, &a)
	require.Equal(t, rotation.Pairing{"Alice": "Carol", "Bob": "Alice", "Carol": "Bob"}, a.Pairs)
	require.Equal(t, 1, a.Meta.ISOWeek)
	require.Equal(t, 2, a.Meta.Offset)

	// defaults to today
	w = s.do(t, http.MethodGet, "/api/pairings", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var today rotation.Assignment
	decode(t, w, &today)
	require.Equal(t, "2024-01-01", today.Meta.Date)

	w = s.do(t, http.MethodGet, "/api/pairings?date=01/01/2024", s.key, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errResp ErrResponse
	decode(t, w, &errResp)
	require.Equal(t, "INVALID_DATE", errResp.Error.Code)
}

func TestGetPairings_AppliesAbsences(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "Core", "Alice", "Bob", "Carol")

	w := s.do(t, http.MethodPost, "/admin/absences", s.admin, models.AbsenceInput{Member: "Bob", Date: "2024-01-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/admin/absences?date=2024-01-01", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"date":"2024-01-01","absent":["Bob"]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/pairings?date=2024-01-01", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a rotation.Assignment
	decode(t, w, &a)
	require.Equal(t, []string{"Alice", "Carol"}, a.Present)
	require.Equal(t, rotation.Pairing{"Alice": "Carol", "Carol": "Alice"}, a.Pairs)

	// the absence only applies to its own date
	w = s.do(t, http.MethodGet, "/api/pairings?date=2024-01-02", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &a)
	require.Len(t, a.Pairs, 3)

	w = s.do(t, http.MethodDelete, "/admin/absences?member=Bob&date=2024-01-01", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/pairings?date=2024-01-01", s.key, nil)
	decode(t, w, &a)
	require.Len(t, a.Pairs, 3)

	w = s.do(t, http.MethodPost, "/admin/absences", s.admin, models.AbsenceInput{Member: "Nobody", Date: "2024-01-01"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetWeekPairings(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "Core", "Alice", "Bob", "Carol", "Dan")
	require.NoError(t, s.h.Roster.MarkAbsent("Dan", "2024-01-03"))

	w := s.do(t, http.MethodGet, "/api/pairings/week?date=2024-01-03", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.WeekResponse
	decode(t, w, &resp)
	require.Equal(t, 1, resp.ISOWeek)
	require.Len(t, resp.Days, 5)
	for i, day := range resp.Days {
		require.Equal(t, i, day.Meta.DayOfWeekISO)
		require.Equal(t, fmt.Sprintf("2024-01-%02d", i+1), day.Meta.Date)
	}
	require.Len(t, resp.Days[2].Present, 3)
	require.Len(t, resp.Days[1].Present, 4)
}

func TestCreatePairings_Inline(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/pairings", s.key, models.PairingInput{
		Date:   "2024-01-01",
		Roster: rotation.Roster{"Core": {"Carol", "Alice"}, "AI": {"Bob"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var a rotation.Assignment
	decode(t, w, &a)
	require.Equal(t, rotation.Pairing{"Alice": "Carol", "Bob": "Alice", "Carol": "Bob"}, a.Pairs)
	require.Equal(t, "AI", a.Teams[0].Team)

	tests := []struct {
		name  string
		input models.PairingInput
	}{
		{"unknown absentee", models.PairingInput{Roster: rotation.Roster{"Core": {"Alice"}}, Absent: []string{"Zed"}}},
		{"duplicate member", models.PairingInput{Roster: rotation.Roster{"Core": {"Alice"}, "AI": {"Alice"}}}},
		{"blank team", models.PairingInput{Roster: rotation.Roster{" ": {"Alice"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/pairings", s.key, tt.input)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var errResp ErrResponse
			decode(t, w, &errResp)
			require.Equal(t, "INVALID_ROSTER", errResp.Error.Code)
		})
	}

	w = s.do(t, http.MethodPost, "/api/pairings", s.key, models.PairingInput{Roster: rotation.Roster{}})
	require.Equal(t, http.StatusOK, w.Code)
	var empty rotation.Assignment
	decode(t, w, &empty)
	require.Empty(t, empty.Pairs)
	require.Zero(t, empty.Meta.Offset)
}

func TestValidateInput(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/validate", s.key, models.PairingInput{
		Roster: rotation.Roster{"Core": {"Alice", "Bob"}, "AI": {"Carol"}},
		Absent: []string{"Carol"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"valid":true,"stats":{"team_count":2,"member_count":3,"present_count":2,"pair_count":2}}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/validate", s.key, models.PairingInput{
		Roster: rotation.Roster{"Core": {"Alice"}, "AI": {"Alice"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	require.False(t, resp.Valid)
	require.Contains(t, resp.Error, "Alice")

	// an empty roster is valid and yields no pairs, as POST /api/pairings does
	w = s.do(t, http.MethodPost, "/api/validate", s.key, models.PairingInput{})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"valid":true,"stats":{"team_count":0,"member_count":0,"present_count":0,"pair_count":0}}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/validate", s.key, models.PairingInput{Roster: rotation.Roster{"Core": {"Alice"}}})
	require.JSONEq(t, `{"valid":true,"stats":{"team_count":1,"member_count":1,"present_count":1,"pair_count":0}}`, w.Body.String())
}

func TestAPIKeyMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/pairings", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	forged := auth.New("jwt-secret", "other").GenerateHMACKey("standup-bot")
	w = s.do(t, http.MethodGet, "/api/pairings", forged, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/pairings", "not-a-key", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown but correctly signed keys are registered on first use
	w = s.do(t, http.MethodGet, "/api/pairings", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var key database.APIKey
	require.NoError(t, s.h.DB.Where(database.APIKey{Key: s.key}).First(&key).Error)
	require.Equal(t, "standup-bot", key.Name)
	require.NotNil(t, key.LastUsed)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/admin/keys", s.admin, gin.H{"name": "limited", "rate_limit": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID  uint   `json:"id"`
		Key string `json:"key"`
	}
	decode(t, w, &created)

	w = s.do(t, http.MethodGet, "/api/pairings", created.Key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/pairings", created.Key, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/admin/keys/%d", created.ID), s.admin, gin.H{"rate_limit": 5})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/pairings", created.Key, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUsageTracking(t *testing.T) {
	s := newTestServer(t)
	s.seed(t, "Core", "Alice", "Bob", "Carol")

	w := s.do(t, http.MethodGet, "/api/pairings?date=2024-01-01", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/usage", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		KeyName string `json:"key_name"`
		Totals  struct {
			Requests int `json:"requests"`
			Members  int `json:"members"`
			Pairs    int `json:"pairs"`
		} `json:"totals"`
	}
	decode(t, w, &resp)
	require.Equal(t, "standup-bot", resp.KeyName)
	require.Equal(t, 1, resp.Totals.Requests)
	require.Equal(t, 3, resp.Totals.Members)
	require.Equal(t, 3, resp.Totals.Pairs)

	var usage database.APIUsage
	require.NoError(t, s.h.DB.First(&usage).Error)
	require.Equal(t, 2, usage.RequestCount)
	require.Equal(t, "2024-01-01", usage.Date)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/usage/%d", usage.KeyID), s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminKeys(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/admin/keys", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/admin/keys", s.key, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/admin/keys", s.admin, gin.H{"name": "dashboard"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID  uint   `json:"id"`
		Key string `json:"key"`
	}
	decode(t, w, &created)

	w = s.do(t, http.MethodGet, "/admin/keys", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), created.Key)
	require.Contains(t, w.Body.String(), auth.KeyPreview(created.Key))

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/keys/%d", created.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/keys/%d", created.ID), s.admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevokedKeyStaysRevoked(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/admin/keys", s.admin, gin.H{"name": "dashboard", "rate_limit": 50})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID  uint   `json:"id"`
		Key string `json:"key"`
	}
	decode(t, w, &created)

	w = s.do(t, http.MethodGet, "/api/pairings", created.Key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/admin/keys/%d", created.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodGet, "/api/pairings", created.Key, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// the key is not registered again on use
	var count int64
	require.NoError(t, s.h.DB.Model(&database.APIKey{}).Where(database.APIKey{Key: created.Key}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	w = s.do(t, http.MethodGet, "/admin/keys", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "dashboard")

	w = s.do(t, http.MethodPut, fmt.Sprintf("/admin/keys/%d", created.ID), s.admin, gin.H{"rate_limit": 5})
	require.Equal(t, http.StatusNotFound, w.Code)

	// the same name signs to the same key, so it cannot be issued again
	w = s.do(t, http.MethodPost, "/admin/keys", s.admin, gin.H{"name": "dashboard"})
	require.Equal(t, http.StatusConflict, w.Code)

	// other keys are unaffected
	w = s.do(t, http.MethodGet, "/api/pairings", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUsageDayIsUTC(t *testing.T) {
	s := newTestServer(t)
	// 23:30 on Jan 1 in UTC-5 is already Jan 2 in UTC
	s.h.Now = func() time.Time {
		return time.Date(2024, time.January, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	}

	w := s.do(t, http.MethodGet, "/api/pairings", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a rotation.Assignment
	decode(t, w, &a)
	require.Equal(t, "2024-01-02", a.Meta.Date)

	var usage database.APIUsage
	require.NoError(t, s.h.DB.First(&usage).Error)
	require.Equal(t, "2024-01-02", usage.Date)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, auth.EnsureAdminExists(s.h.Logger, s.h.DB, "admin", "admin123"))

	w := s.do(t, http.MethodPost, "/admin/login", "", gin.H{"username": "admin", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/admin/login", "", gin.H{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &resp)

	w = s.do(t, http.MethodGet, "/admin/members", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestMembers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/admin/members", s.admin, models.MemberInput{Name: "Alice", Team: "Core"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/admin/members", s.admin, models.MemberInput{Name: "Alice", Team: "AI"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/admin/members", s.admin, gin.H{"name": "Bob"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var list struct {
		Members []roster.Member `json:"members"`
	}
	w = s.do(t, http.MethodGet, "/admin/members", s.admin, nil)
	decode(t, w, &list)
	require.Len(t, list.Members, 1)

	w = s.do(t, http.MethodDelete, "/admin/members/Alice", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/admin/members/Alice", s.admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStandups(t *testing.T) {
	s := newTestServer(t)

	for _, in := range []models.StandupInput{
		{Person: "Gus", Team: "AI", Today: "evals"},
		{Person: "alice", Team: "Core", Yesterday: "reviews"},
		{Person: "Zed", Team: "Ops"},
	} {
		w := s.do(t, http.MethodPut, "/api/standups", s.key, in)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// second save replaces the first
	w := s.do(t, http.MethodPut, "/api/standups", s.key, models.StandupInput{Person: "Gus", Team: "AI", Today: "demos"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/standups?date=2024-01-01", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var board models.StandupBoard
	decode(t, w, &board)
	require.Equal(t, 3, board.Count)
	require.Len(t, board.Groups, 3)
	require.Equal(t, "Core", board.Groups[0].Team)
	require.Equal(t, "AI", board.Groups[1].Team)
	require.Equal(t, "demos", *board.Groups[1].Entries[0].Today)
	require.Equal(t, "Unassigned", board.Groups[2].Team)

	w = s.do(t, http.MethodGet, "/api/standups?date=2023-12-31", s.key, nil)
	decode(t, w, &board)
	require.Zero(t, board.Count)
	require.Empty(t, board.Groups)

	w = s.do(t, http.MethodPut, "/api/standups", s.key, gin.H{"person": "Gus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClosestGuess(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/questions/active", s.key, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/admin/questions", s.admin, gin.H{"question": "Jelly beans in the jar?", "answer": 42})
	require.Equal(t, http.StatusCreated, w.Code)
	var q guess.Question
	decode(t, w, &q)

	w = s.do(t, http.MethodPut, "/api/guesses", s.key, gin.H{"name": "Alice", "guess": 40})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/admin/questions/%d/activate", q.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/questions/active", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "answer")

	for _, g := range []gin.H{
		{"name": "Alice", "guess": 40},
		{"name": "Bob", "guess": 50},
		{"name": "Carol", "guess": 44},
	} {
		w = s.do(t, http.MethodPut, "/api/guesses", s.key, g)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/questions/%d/results", q.ID), s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res models.QuestionResults
	decode(t, w, &res)
	// Alice and Carol are both 2 away; the earlier guess wins
	require.Equal(t, "Alice", res.Closest.Guess.Name)
	require.Equal(t, "Bob", res.Farthest.Guess.Name)
	require.Equal(t, 8.0, res.Farthest.Distance)
	require.Len(t, res.Leaderboard, 3)
	require.Equal(t, "Carol", res.Leaderboard[1].Guess.Name)

	w = s.do(t, http.MethodPut, "/admin/active-question", s.admin, gin.H{"id": 0})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/questions/active", s.key, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/admin/guesses", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, fmt.Sprintf("/admin/questions/%d/results", q.ID), s.admin, nil)
	decode(t, w, &res)
	require.Empty(t, res.Leaderboard)

	w = s.do(t, http.MethodGet, "/admin/questions/abc/results", s.admin, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/admin/questions/999/results", s.admin, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpinWheel(t *testing.T) {
	s := newTestServer(t)

	names := []string{"Alice", "Bob", "Carol", "Dan"}
	w := s.do(t, http.MethodPost, "/api/wheel/spin", s.key, models.SpinInput{Names: names, Rotation: 90})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res wheel.Result
	decode(t, w, &res)
	require.Contains(t, names, res.Name)
	require.Equal(t, names[res.Index], res.Name)
	require.Greater(t, res.Rotation, 90.0+5*360)
	require.Len(t, res.Slices, 4)

	// no names and no members
	w = s.do(t, http.MethodPost, "/api/wheel/spin", s.key, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	s.seed(t, "Core", "Alice", "Bob")
	require.NoError(t, s.h.Roster.MarkAbsent("Bob", "2024-01-01"))
	w = s.do(t, http.MethodPost, "/api/wheel/spin", s.key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &res)
	require.Equal(t, "Alice", res.Name)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	s.do(t, http.MethodPost, "/api/pairings", s.key, models.PairingInput{Roster: rotation.Roster{"Core": {"A", "B"}}})

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "standup_pairings_total")
	require.Contains(t, w.Body.String(), `path="/api/pairings"`)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{rotation.ErrDuplicateMember, http.StatusBadRequest, "INVALID_ROSTER"},
		{fmt.Errorf("wrapped: %w", rotation.ErrUnknownAbsentee), http.StatusBadRequest, "INVALID_ROSTER"},
		{errBadDate, http.StatusBadRequest, "INVALID_DATE"},
		{wheel.ErrNoNames, http.StatusBadRequest, "INVALID_REQUEST"},
		{roster.ErrMemberExists, http.StatusConflict, "MEMBER_EXISTS"},
		{fmt.Errorf("create key: %w", gorm.ErrDuplicatedKey), http.StatusConflict, "CONFLICT"},
		{guess.ErrNoActiveQuestion, http.StatusNotFound, "NOT_FOUND"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		status, apiErr := mapError(tt.err)
		require.Equal(t, tt.status, status, tt.err.Error())
		require.Equal(t, tt.code, apiErr.Code)
	}

	_, apiErr := mapError(errors.New("secret dsn in message"))
	require.NotContains(t, apiErr.Message, "dsn")
}
