package models

// Role is the marketplace party a profile acts as.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// PaymentMethod is how the buyer settles a finished job.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentOnline || p == PaymentCash
}
