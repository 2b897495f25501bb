package models

import (
	"testing"
	"time"
)

func TestContractSignatures(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name         string
		buyer        *time.Time
		seller       *time.Time
		buyerSigned  bool
		sellerSigned bool
		executed     bool
	}{
		{"unsigned", nil, nil, false, false, false},
		{"buyer only", &now, nil, true, false, false},
		{"seller only", nil, &now, false, true, false},
		{"both", &now, &now, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Contract{BuyerSignedAt: tt.buyer, SellerSignedAt: tt.seller}
			if got := c.SignedBy(RoleBuyer); got != tt.buyerSigned {
				t.Fatalf("SignedBy(buyer) = %v", got)
			}
			if got := c.SignedBy(RoleSeller); got != tt.sellerSigned {
				t.Fatalf("SignedBy(seller) = %v", got)
			}
			if got := c.FullyExecuted(); got != tt.executed {
				t.Fatalf("FullyExecuted = %v", got)
			}
		})
	}
	if (Contract{BuyerSignedAt: &now, SellerSignedAt: &now}).SignedBy("") {
		t.Fatal("empty role should never count as signed")
	}
}

func TestContractRoleOf(t *testing.T) {
	c := Contract{BuyerID: "b", SellerID: "s"}
	if role, ok := c.RoleOf("b"); !ok || role != RoleBuyer {
		t.Fatalf("buyer: %s %v", role, ok)
	}
	if role, ok := c.RoleOf("s"); !ok || role != RoleSeller {
		t.Fatalf("seller: %s %v", role, ok)
	}
	if _, ok := c.RoleOf("x"); ok {
		t.Fatal("outsider should have no role")
	}
}

func TestBookingAllowsContractChanges(t *testing.T) {
	for status, want := range map[BookingStatus]bool{
		BookingPending:         false,
		BookingAccepted:        false,
		BookingContractPending: true,
		BookingCancelled:       false,
		BookingDeclined:        false,
		BookingCompleted:       false,
	} {
		if got := status.AllowsContractChanges(); got != want {
			t.Fatalf("%s: expected %v, got %v", status, want, got)
		}
	}
}
