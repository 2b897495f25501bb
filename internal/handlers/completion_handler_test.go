package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sanaaBack/internal/marketplace/completion"
	"sanaaBack/internal/models"
)

type memoryCompletionStore struct {
	rec    completion.Record
	writes int
}

func (s *memoryCompletionStore) Load(_ context.Context, t completion.Target) (completion.Record, error) {
	if t.ID() != s.rec.ID() {
		return completion.Record{}, models.ErrNoRecord
	}
	return s.rec, nil
}

func (s *memoryCompletionStore) MarkBuyerComplete(_ context.Context, _ completion.Target, at time.Time) error {
	s.writes++
	s.rec.BuyerMarkedComplete = true
	s.rec.BuyerCompletedAt = &at
	return nil
}

func (s *memoryCompletionStore) MarkSellerComplete(_ context.Context, _ completion.Target, at time.Time) error {
	s.writes++
	s.rec.SellerMarkedComplete = true
	s.rec.SellerCompletedAt = &at
	s.rec.Status = completion.StatusCompleted
	return nil
}

func newCompletionHandler(executed bool) (*CompletionHandler, *memoryCompletionStore) {
	store := &memoryCompletionStore{rec: completion.Record{
		Target:   completion.Target{BookingID: "b1"},
		BuyerID:  "buyer",
		SellerID: "seller",
		Props: completion.Props{
			Status:                "contract_pending",
			ContractFullyExecuted: executed,
			PaymentMethod:         models.PaymentCash,
		},
	}}
	return &CompletionHandler{Service: completion.NewService(store, nil)}, store
}

func asUser(r *http.Request, userID string, role models.Role) *http.Request {
	return r.WithContext(WithIdentity(r.Context(), userID, role))
}

func TestCompletionHandlerFlow(t *testing.T) {
	h, store := newCompletionHandler(true)

	r := asUser(httptest.NewRequest(http.MethodPost, "/completion/mark_complete", strings.NewReader(`{"booking_id":"b1"}`)), "buyer", models.RoleBuyer)
	rr := httptest.NewRecorder()
	h.MarkComplete(rr, r)
	if rr.Code != http.StatusOK {
		t.Fatalf("mark complete: %d %s", rr.Code, rr.Body.String())
	}
	var resp completionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.View.State != completion.StateBuyerConfirmed || resp.View.Progress != 50 {
		t.Fatalf("unexpected view %+v", resp.View)
	}

	r = asUser(httptest.NewRequest(http.MethodPost, "/completion/confirm_payment", strings.NewReader(`{"booking_id":"b1"}`)), "seller", models.RoleSeller)
	rr = httptest.NewRecorder()
	h.ConfirmPayment(rr, r)
	if rr.Code != http.StatusOK {
		t.Fatalf("confirm payment: %d %s", rr.Code, rr.Body.String())
	}
	if store.rec.Status != completion.StatusCompleted || store.writes != 2 {
		t.Fatalf("store = %+v writes=%d", store.rec.Props, store.writes)
	}
}

func TestCompletionHandlerRejectsDisabledAction(t *testing.T) {
	h, store := newCompletionHandler(false)

	r := asUser(httptest.NewRequest(http.MethodPost, "/completion/mark_complete", strings.NewReader(`{"booking_id":"b1"}`)), "buyer", models.RoleBuyer)
	rr := httptest.NewRecorder()
	h.MarkComplete(rr, r)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d", rr.Code)
	}
	if store.writes != 0 {
		t.Fatalf("disabled action wrote %d times", store.writes)
	}
}

func TestCompletionHandlerGet(t *testing.T) {
	h, _ := newCompletionHandler(false)

	rr := httptest.NewRecorder()
	h.Get(rr, asUser(httptest.NewRequest(http.MethodGet, "/completion?booking_id=b1", nil), "seller", models.RoleSeller))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp completionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.View.Enabled(completion.ActionConfirmPayment) {
		t.Fatal("seller action enabled before buyer confirmation")
	}

	rr = httptest.NewRecorder()
	h.Get(rr, asUser(httptest.NewRequest(http.MethodGet, "/completion?booking_id=b1&request_id=r1", nil), "seller", models.RoleSeller))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("two targets: status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Get(rr, asUser(httptest.NewRequest(http.MethodGet, "/completion?booking_id=b1", nil), "stranger", models.RoleBuyer))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("stranger: status = %d", rr.Code)
	}
}
