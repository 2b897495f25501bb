package services

import (
	"context"
	"errors"
	"testing"

	"sanaaBack/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestNewRequestInputValidate(t *testing.T) {
	base := NewRequestInput{Title: "Leaking pipe", Category: "plumbing", City: "Riyadh"}
	tests := []struct {
		name string
		edit func(*NewRequestInput)
		ok   bool
	}{
		{"minimal", func(*NewRequestInput) {}, true},
		{"missing title", func(in *NewRequestInput) { in.Title = " " }, false},
		{"bad urgency", func(in *NewRequestInput) { in.Urgency = "asap" }, false},
		{"bad payment", func(in *NewRequestInput) { in.PaymentMethod = "card" }, false},
		{"inverted budget", func(in *NewRequestInput) { in.BudgetMin, in.BudgetMax = ptr(500.0), ptr(100.0) }, false},
		{"negative budget", func(in *NewRequestInput) { in.BudgetMax = ptr(-1.0) }, false},
		{"budget range", func(in *NewRequestInput) { in.BudgetMin, in.BudgetMax = ptr(100.0), ptr(500.0) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.edit(&in)
			err := in.validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestQuoteInputValidate(t *testing.T) {
	if err := (QuoteInput{Price: 100, Duration: "2 days"}).validate(); err != nil {
		t.Fatalf("valid quote rejected: %v", err)
	}
	if err := (QuoteInput{Price: 0, Duration: "2 days"}).validate(); err == nil {
		t.Fatal("zero price accepted")
	}
	if err := (QuoteInput{Price: 10}).validate(); err == nil {
		t.Fatal("missing duration accepted")
	}
}

func TestValidTemplate(t *testing.T) {
	if !validTemplate(models.QuoteTemplate{Name: "AC service"}) {
		t.Fatal("template without price should be valid")
	}
	if validTemplate(models.QuoteTemplate{Name: "x", Price: ptr(-5.0)}) {
		t.Fatal("negative price accepted")
	}
	if validTemplate(models.QuoteTemplate{Name: "  "}) {
		t.Fatal("blank name accepted")
	}
}

func TestRoleGuardsRunBeforeStorage(t *testing.T) {
	ctx := context.Background()
	if _, err := (&MaintenanceRequestService{}).Create(ctx, "u", models.RoleSeller, NewRequestInput{}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("request by seller: %v", err)
	}
	if _, err := (&QuoteService{}).Submit(ctx, "u", models.RoleBuyer, "r", QuoteInput{Price: 1, Duration: "1d"}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("quote by buyer: %v", err)
	}
	if _, err := (&BookingService{}).Create(ctx, "u", models.RoleSeller, NewBookingInput{}); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("booking by seller: %v", err)
	}
	if _, err := (&BookingService{}).Create(ctx, "u", models.RoleBuyer, NewBookingInput{SellerID: "u", Title: "self"}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("self booking: %v", err)
	}
	if _, err := (&BookingService{}).Counter(ctx, "u", "b", CounterInput{}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("empty counter: %v", err)
	}
	if _, err := (&ContractService{}).Create(ctx, "u", ContractInput{QuoteID: "q", BookingID: "b"}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("contract with two sources: %v", err)
	}
	if _, err := (&ChatService{}).Send(ctx, "u", models.ThreadBooking, "b", "  "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("empty chat message: %v", err)
	}
	if _, _, err := (&ProfileService{}).SignUp(ctx, models.Profile{Email: "a@b.co", FullName: "A", Password: "short", Role: models.RoleBuyer}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("short password: %v", err)
	}
	if _, _, err := (&ProfileService{}).SignUp(ctx, models.Profile{Email: "a@b.co", FullName: "A", Password: "longenough", Role: models.RoleAdmin}); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("admin sign up: %v", err)
	}
}

func TestPartyRole(t *testing.T) {
	if partyRole("b", "b", "s") != models.RoleBuyer || partyRole("s", "b", "s") != models.RoleSeller {
		t.Fatal("party roles mismatch")
	}
	if partyRole("x", "b", "s") != "" || partyRole("", "", "s") != "" {
		t.Fatal("outsider got a role")
	}
}

func TestOptionalContract(t *testing.T) {
	c, err := optional(models.Contract{}, models.ErrNoRecord)
	if c != nil || err != nil {
		t.Fatalf("missing contract: %v %v", c, err)
	}
	c, err = optional(models.Contract{ID: "c"}, nil)
	if err != nil || c == nil || c.ID != "c" {
		t.Fatalf("present contract: %v %v", c, err)
	}
}

func TestQuoteStatusLive(t *testing.T) {
	for status, want := range map[models.QuoteStatus]bool{
		models.QuotePending:           true,
		models.QuoteNegotiating:       true,
		models.QuoteRevisionRequested: true,
		models.QuoteAccepted:          false,
		models.QuoteRejected:          false,
	} {
		if got := status.Live(); got != want {
			t.Fatalf("%s: expected %v, got %v", status, want, got)
		}
	}
}
