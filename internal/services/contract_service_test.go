package services

import (
	"errors"
	"testing"
	"time"

	"sanaaBack/internal/marketplace/fsm"
	"sanaaBack/internal/models"
)

func readyContract() models.Contract {
	return models.Contract{ID: "c1", BuyerID: "buyer", SellerID: "seller", Amount: 100, Status: models.ContractReadyToSign}
}

func applySign(t *testing.T, c *models.Contract, userID string, at time.Time) error {
	t.Helper()
	from := c.Status
	if err := signBy(userID, at)(c); err != nil {
		return err
	}
	if !fsm.CanTransition(fsm.Contracts, string(from), string(c.Status)) {
		t.Fatalf("sign moved %s -> %s", from, c.Status)
	}
	return nil
}

func TestSignBuyerFirst(t *testing.T) {
	c := readyContract()
	t1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	if err := applySign(t, &c, "buyer", t1); err != nil {
		t.Fatalf("buyer sign: %v", err)
	}
	if c.Status != models.ContractPendingSeller || c.FullyExecuted() || c.ExecutedAt != nil {
		t.Fatalf("after buyer: %+v", c)
	}
	if err := applySign(t, &c, "seller", t2); err != nil {
		t.Fatalf("seller sign: %v", err)
	}
	if c.Status != models.ContractExecuted || !c.FullyExecuted() {
		t.Fatalf("after seller: %+v", c)
	}
	if c.ExecutedAt == nil || !c.ExecutedAt.Equal(t2) || !c.BuyerSignedAt.Equal(t1) {
		t.Fatalf("timestamps: buyer=%v executed=%v", c.BuyerSignedAt, c.ExecutedAt)
	}
}

func TestSignSellerFirst(t *testing.T) {
	c := readyContract()
	now := time.Now().UTC()
	if err := applySign(t, &c, "seller", now); err != nil {
		t.Fatalf("seller sign: %v", err)
	}
	if c.Status != models.ContractPendingBuyer || c.SellerSignedAt == nil || c.BuyerSignedAt != nil {
		t.Fatalf("after seller: %+v", c)
	}
	if err := applySign(t, &c, "buyer", now); err != nil {
		t.Fatalf("buyer sign: %v", err)
	}
	if c.Status != models.ContractExecuted {
		t.Fatalf("status = %s", c.Status)
	}
}

func TestSignRejections(t *testing.T) {
	signed := readyContract()
	if err := signBy("buyer", time.Now())(&signed); err != nil {
		t.Fatalf("first sign: %v", err)
	}
	draft := readyContract()
	draft.Status = models.ContractDraft
	executed := readyContract()
	executed.Status = models.ContractExecuted

	tests := []struct {
		name   string
		c      models.Contract
		userID string
		want   error
	}{
		{"double sign", signed, "buyer", models.ErrConflict},
		{"unsent draft", draft, "buyer", models.ErrInvalidTransition},
		{"already executed", executed, "seller", models.ErrInvalidTransition},
		{"outsider", readyContract(), "someone", models.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			before := c.Status
			err := signBy(tt.userID, time.Now())(&c)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if c.Status != before {
				t.Fatalf("status changed to %s", c.Status)
			}
		})
	}
}

func TestSendDraft(t *testing.T) {
	c := readyContract()
	c.Status = models.ContractDraft
	if err := sendBy("someone")(&c); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("outsider: %v", err)
	}
	if err := sendBy("seller")(&c); err != nil {
		t.Fatalf("send: %v", err)
	}
	if c.Status != models.ContractReadyToSign {
		t.Fatalf("status = %s", c.Status)
	}
	if err := sendBy("buyer")(&c); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("second send: %v", err)
	}
}

func TestLatestAcceptedPrice(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []models.QuoteNegotiation{
		{ID: "n4", Status: models.NegotiationDeclined, OfferedPrice: ptr(50.0), CreatedAt: base.Add(4 * time.Hour)},
		{ID: "n3", Status: models.NegotiationAccepted, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "n2", Status: models.NegotiationAccepted, OfferedPrice: ptr(80.0), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "n1", Status: models.NegotiationAccepted, OfferedPrice: ptr(90.0), CreatedAt: base.Add(time.Hour)},
	}
	if got := latestAcceptedPrice(history); got == nil || *got != 80 {
		t.Fatalf("expected 80, got %v", got)
	}
	if got := latestAcceptedPrice(history[:2]); got != nil {
		t.Fatalf("expected no price, got %v", *got)
	}
}
