// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/class-ballot/cliparse"
	"github.com/danielhkuo/class-ballot/ledger"
	"github.com/danielhkuo/class-ballot/models"
	"github.com/danielhkuo/class-ballot/testutil"
)

func setupVoting(t *testing.T) (*VotingHandler, *sql.DB, cliparse.Config) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	lg := ledger.New(conn, cfg.Election)
	return NewVotingHandler(lg, cfg), conn, cfg
}

func TestGetElection(t *testing.T) {
	h, conn, _ := setupVoting(t)
	testutil.SeedTestCandidates(t, conn)

	req := testutil.MakeRequest("GET", "/election", nil, nil)
	w := httptest.NewRecorder()
	h.GetElection(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ElectionResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Name != "AIE Class Elections" {
		t.Errorf("Expected election name, got %q", resp.Name)
	}
	if len(resp.Categories) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(resp.Categories))
	}
	for _, c := range resp.Categories {
		if len(c.Candidates) != 1 {
			t.Errorf("Expected 1 candidate in %s, got %d", c.Category, len(c.Candidates))
		}
	}
	if resp.Published {
		t.Error("Fresh election should not be published")
	}
}

func TestVerify(t *testing.T) {
	h, _, cfg := setupVoting(t)

	req := testutil.MakeRequest("POST", "/verify", models.VerifyRequest{
		StudentID: "aie24210",
		Password:  cfg.StudentPassword,
	}, nil)
	w := httptest.NewRecorder()
	h.Verify(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VerifyResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.StudentID != "AIE24210" {
		t.Errorf("Expected normalized ID AIE24210, got %q", resp.StudentID)
	}
	if !resp.Eligible {
		t.Error("Expected eligible student")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h, _, _ := setupVoting(t)

	req := testutil.MakeRequest("POST", "/verify", models.VerifyRequest{
		StudentID: "AIE24210",
		Password:  "wrong",
	}, nil)
	w := httptest.NewRecorder()
	h.Verify(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestVerify_BadIDFormat(t *testing.T) {
	h, _, cfg := setupVoting(t)

	for _, id := range []string{"AIE24300", "AIE2421", "XYZ24210", "AIE24abc"} {
		req := testutil.MakeRequest("POST", "/verify", models.VerifyRequest{
			StudentID: id,
			Password:  cfg.StudentPassword,
		}, nil)
		w := httptest.NewRecorder()
		h.Verify(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

func TestVerify_AlreadyVoted(t *testing.T) {
	h, conn, cfg := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)
	testutil.SubmitTestBallot(t, conn, testutil.StudentID(0), selections)

	req := testutil.MakeRequest("POST", "/verify", models.VerifyRequest{
		StudentID: testutil.StudentID(0),
		Password:  cfg.StudentPassword,
	}, nil)
	w := httptest.NewRecorder()
	h.Verify(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSubmitBallot(t *testing.T) {
	h, conn, cfg := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)

	req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
		StudentID:  "aie24205",
		Password:   cfg.StudentPassword,
		Selections: selections,
	}, nil)
	w := httptest.NewRecorder()
	h.SubmitBallot(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitBallotResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.StudentID != "AIE24205" {
		t.Errorf("Expected normalized ID AIE24205, got %q", resp.StudentID)
	}

	var count int
	conn.QueryRow("SELECT COUNT(*) FROM votes WHERE student_id = $1", "AIE24205").Scan(&count)
	if count != 4 {
		t.Errorf("Expected 4 recorded votes, got %d", count)
	}
}

func TestSubmitBallot_WrongPassword(t *testing.T) {
	h, conn, _ := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)

	req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
		StudentID:  "AIE24205",
		Password:   "wrong",
		Selections: selections,
	}, nil)
	w := httptest.NewRecorder()
	h.SubmitBallot(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSubmitBallot_Twice(t *testing.T) {
	h, conn, cfg := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)

	body := models.SubmitBallotRequest{
		StudentID:  "AIE24205",
		Password:   cfg.StudentPassword,
		Selections: selections,
	}

	w := httptest.NewRecorder()
	h.SubmitBallot(w, testutil.MakeRequest("POST", "/ballots", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	h.SubmitBallot(w, testutil.MakeRequest("POST", "/ballots", body, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSubmitBallot_Incomplete(t *testing.T) {
	h, conn, cfg := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)

	// Drop one category from the ballot
	partial := make(map[string]string)
	for k, v := range selections {
		partial[k] = v
	}
	delete(partial, "Hostler Girl")

	req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
		StudentID:  "AIE24205",
		Password:   cfg.StudentPassword,
		Selections: partial,
	}, nil)
	w := httptest.NewRecorder()
	h.SubmitBallot(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Nothing was written
	var count int
	conn.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count)
	if count != 0 {
		t.Errorf("Partial ballot should record nothing, found %d votes", count)
	}
}

func TestSubmitBallot_UnknownCandidate(t *testing.T) {
	h, conn, cfg := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)
	selections["Hostler Boy"] = "Write-In Willy"

	req := testutil.MakeRequest("POST", "/ballots", models.SubmitBallotRequest{
		StudentID:  "AIE24205",
		Password:   cfg.StudentPassword,
		Selections: selections,
	}, nil)
	w := httptest.NewRecorder()
	h.SubmitBallot(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetStudentStatus(t *testing.T) {
	h, conn, _ := setupVoting(t)
	selections := testutil.SeedTestCandidates(t, conn)
	testutil.SubmitTestBallot(t, conn, testutil.StudentID(3), selections)

	req := testutil.MakeRequest("GET", "/students/"+testutil.StudentID(3)+"/status", nil, nil)
	req.SetPathValue("id", testutil.StudentID(3))
	w := httptest.NewRecorder()
	h.GetStudentStatus(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.StudentStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.HasVoted {
		t.Error("Expected has_voted true")
	}

	req = testutil.MakeRequest("GET", "/students/"+testutil.StudentID(4)+"/status", nil, nil)
	req.SetPathValue("id", testutil.StudentID(4))
	w = httptest.NewRecorder()
	h.GetStudentStatus(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.HasVoted {
		t.Error("Expected has_voted false")
	}
}
