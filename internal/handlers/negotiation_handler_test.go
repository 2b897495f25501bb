package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sanaaBack/internal/marketplace/negotiation"
	"sanaaBack/internal/models"
)

type memoryNegotiations struct {
	parties models.QuoteParties
	rows    map[string]models.QuoteNegotiation
	calls   int
}

func (m *memoryNegotiations) QuoteParties(context.Context, string) (models.QuoteParties, error) {
	m.calls++
	return m.parties, nil
}

func (m *memoryNegotiations) Create(_ context.Context, n models.QuoteNegotiation) error {
	m.calls++
	m.rows[n.ID] = n
	return nil
}

func (m *memoryNegotiations) Get(_ context.Context, id string) (models.QuoteNegotiation, error) {
	m.calls++
	n, ok := m.rows[id]
	if !ok {
		return models.QuoteNegotiation{}, models.ErrNoRecord
	}
	return n, nil
}

func (m *memoryNegotiations) SetStatus(_ context.Context, id string, from, to models.NegotiationStatus, at time.Time) error {
	m.calls++
	n := m.rows[id]
	if n.Status != from {
		return models.ErrConflict
	}
	n.Status = to
	n.RespondedAt = &at
	m.rows[id] = n
	return nil
}

func (m *memoryNegotiations) ListByQuote(context.Context, string) ([]models.QuoteNegotiation, error) {
	m.calls++
	out := []models.QuoteNegotiation{}
	for _, n := range m.rows {
		out = append(out, n)
	}
	return out, nil
}

func withPathParam(r *http.Request, name, value string) *http.Request {
	q := r.URL.Query()
	q.Set(":"+name, value)
	r.URL.RawQuery = q.Encode()
	return r
}

func TestNegotiationHandlerEmptyOfferTouchesNothing(t *testing.T) {
	repo := &memoryNegotiations{rows: map[string]models.QuoteNegotiation{}}
	h := &NegotiationHandler{Service: negotiation.NewService(repo, nil)}

	r := httptest.NewRequest(http.MethodPost, "/quotes/q1/negotiations", strings.NewReader(`{"message":"  "}`))
	r = withPathParam(asUser(r, "buyer", models.RoleBuyer), "id", "q1")
	rr := httptest.NewRecorder()
	h.Create(rr, r)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if repo.calls != 0 {
		t.Fatalf("repository called %d times", repo.calls)
	}
}

func TestNegotiationHandlerInitiatorCannotAccept(t *testing.T) {
	repo := &memoryNegotiations{
		parties: models.QuoteParties{QuoteID: "q1", BuyerID: "buyer", SellerID: "seller", Status: models.QuotePending},
		rows: map[string]models.QuoteNegotiation{
			"n1": {ID: "n1", QuoteID: "q1", InitiatorID: "buyer", RecipientID: "seller", Status: models.NegotiationOpen},
		},
	}
	h := &NegotiationHandler{Service: negotiation.NewService(repo, nil)}

	r := withPathParam(asUser(httptest.NewRequest(http.MethodPost, "/negotiations/n1/accept", nil), "buyer", models.RoleBuyer), "id", "n1")
	rr := httptest.NewRecorder()
	h.Accept(rr, r)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("initiator accept: status = %d", rr.Code)
	}

	r = withPathParam(asUser(httptest.NewRequest(http.MethodPost, "/negotiations/n1/accept", nil), "seller", models.RoleSeller), "id", "n1")
	rr = httptest.NewRecorder()
	h.Accept(rr, r)
	if rr.Code != http.StatusOK {
		t.Fatalf("recipient accept: status = %d %s", rr.Code, rr.Body.String())
	}
	if repo.rows["n1"].Status != models.NegotiationAccepted {
		t.Fatalf("status = %s", repo.rows["n1"].Status)
	}
}
