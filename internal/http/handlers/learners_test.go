package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLearnersApplyCreatesRecord(t *testing.T) {
	app, store := newTestApp(t)

	body := `{
		"user_id": "u1",
		"name": "  Ada Lovelace ",
		"age": 21,
		"skills": [" Mathematics ", "", "Programming"],
		"field_of_study": "computer science",
		"project_description": "Analytical engine studies",
		"requested_funding": 1500,
		"return_model": "ISA",
		"payment_setup_done": true
	}`
	req := httptest.NewRequest("POST", "/learners/apply", strings.NewReader(body))
	rr := httptest.NewRecorder()
	app.LearnersApply(rr, req)

	if rr.Code != 201 {
		t.Fatalf("status = %d, want 201 (%s)", rr.Code, rr.Body.String())
	}

	var payload struct {
		Learner struct {
			ID               string   `json:"id"`
			Name             string   `json:"name"`
			Skills           []string `json:"skills"`
			FieldOfStudy     string   `json:"field_of_study"`
			RequestedFunding float64  `json:"requested_funding"`
			FundedAmount     float64  `json:"funded_amount"`
			FundedPercent    int      `json:"funded_percent"`
			Remaining        float64  `json:"remaining"`
		} `json:"learner"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	l := payload.Learner
	if l.Name != "Ada Lovelace" {
		t.Fatalf("name = %q, want trimmed", l.Name)
	}
	if l.FieldOfStudy != "Computer Science" {
		t.Fatalf("field_of_study = %q, want title-cased", l.FieldOfStudy)
	}
	if len(l.Skills) != 2 {
		t.Fatalf("skills = %v, want empty entries dropped", l.Skills)
	}
	if l.RequestedFunding != 1500 || l.FundedAmount != 0 || l.FundedPercent != 0 || l.Remaining != 1500 {
		t.Fatalf("unexpected funding figures: %+v", l)
	}

	// an application-received notification lands in the user's feed
	feed, _ := store.ListByUser(req.Context(), "u1")
	if len(feed) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(feed))
	}
}

func TestLearnersApplyValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing name", `{"requested_funding": 100, "return_model": "ISA"}`},
		{"zero funding", `{"name": "A", "requested_funding": 0, "return_model": "ISA"}`},
		{"unknown model", `{"name": "A", "requested_funding": 100, "return_model": "Lottery"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/learners/apply", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			app.LearnersApply(rr, req)

			if rr.Code != 400 {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var payload map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload["detail"] == "" {
				t.Fatalf("expected detail message in %v", payload)
			}
		})
	}
}

func TestLearnersExploreFiltersByQuery(t *testing.T) {
	app, store := newTestApp(t)
	seedLearner(t, store, "l1", "u1", 1000, 250)
	seedLearner(t, store, "l2", "u2", 2000, 0)

	req := httptest.NewRequest("GET", "/learners/explore?q=learner+l1", nil)
	rr := httptest.NewRecorder()
	app.LearnersExplore(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var payload struct {
		Learners []struct {
			ID            string `json:"id"`
			FundedPercent int    `json:"funded_percent"`
		} `json:"learners"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Learners) != 1 || payload.Learners[0].ID != "l1" {
		t.Fatalf("unexpected learners: %+v", payload.Learners)
	}
	if payload.Learners[0].FundedPercent != 25 {
		t.Fatalf("funded_percent = %d, want 25", payload.Learners[0].FundedPercent)
	}
}

func TestLearnersExploreNoMatchReturnsEmptyList(t *testing.T) {
	app, store := newTestApp(t)
	seedLearner(t, store, "l1", "u1", 1000, 0)

	req := httptest.NewRequest("GET", "/learners/explore?q=quantum", nil)
	rr := httptest.NewRecorder()
	app.LearnersExplore(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"learners":[]`) {
		t.Fatalf("expected empty learners array, got %s", rr.Body.String())
	}
}

func TestLearnersGetNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := withURLParam(httptest.NewRequest("GET", "/learners/missing", nil), "id", "missing")
	rr := httptest.NewRecorder()
	app.LearnersGet(rr, req)

	if rr.Code != 404 {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "detail") {
		t.Fatalf("expected detail payload, got %s", rr.Body.String())
	}
}
