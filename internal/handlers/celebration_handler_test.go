package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sanaaBack/internal/models"
)

func TestCelebrationContinue(t *testing.T) {
	h := &CelebrationHandler{}

	r := withPathParam(asUser(httptest.NewRequest(http.MethodPost, "/celebrations/job_won/continue", nil), "u", models.RoleSeller), "kind", "job_won")
	rr := httptest.NewRecorder()
	h.Continue(rr, r)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	r = withPathParam(asUser(httptest.NewRequest(http.MethodPost, "/celebrations/party/continue", nil), "u", models.RoleSeller), "kind", "party")
	rr = httptest.NewRecorder()
	h.Continue(rr, r)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown kind: status = %d", rr.Code)
	}
}

func TestJourneyHandlerValidatesQuery(t *testing.T) {
	h := &JourneyHandler{}
	for _, target := range []string{
		"/journey?flow=booking",
		"/journey?flow=rental&booking_id=b1",
		"/journey?flow=quote&quote_id=q1&role=admin",
	} {
		rr := httptest.NewRecorder()
		h.Get(rr, asUser(httptest.NewRequest(http.MethodGet, target, nil), "u", models.RoleBuyer))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", target, rr.Code)
		}
	}
}
