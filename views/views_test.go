// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/party"
)

func TestRender_Login(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, Login, LoginData{Next: "/results", Error: "Invalid username or password. Please try again."})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `name="next" value="/results"`)
	assert.Contains(t, body, "Invalid username or password. Please try again.")
	assert.NotContains(t, body, "Log out")
}

func TestRender_Index(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, Index, IndexData{
		User: models.User{Username: "alice"},
		Candidates: []party.Presentation{
			{CandidateID: "c-1", DisplayName: "Anura Kumara", ShortName: "Anura", Party: "NPP", Color: "#C41E3A"},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, `name="c-1"`)
	assert.Contains(t, body, "Anura Kumara")
	assert.Contains(t, body, ">1st<")
	assert.Contains(t, body, ">3rd<")
	assert.NotContains(t, body, ">4th<")
}

func TestRender_IndexEscapesNames(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, Index, IndexData{
		Candidates: []party.Presentation{{CandidateID: "c-1", DisplayName: "<script>x</script>"}},
	})

	assert.NotContains(t, w.Body.String(), "<script>x</script>")
}

func TestRender_Results(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, Results, ResultsData{
		User: models.User{Username: "alice"},
		Rows: []models.TallyRow{
			{CandidateID: "c-1", Name: "Anura", Party: "NPP", Color: "#C41E3A", Counts: map[int]int{1: 12345, 2: 0, 3: 7}, First: 12345},
		},
		Counted: 12352,
		Skipped: 2,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "12,352 ballots counted")
	assert.Contains(t, body, "2 could not be read")
	assert.Contains(t, body, "12,345")
	assert.Contains(t, body, ">2nd<")
}

func TestRender_Success(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, Success, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your ballot has been recorded.")
}

func TestRender_UnknownPage(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, "missing.html", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
