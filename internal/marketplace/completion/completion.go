// Package completion models the two-step close-out of a job or booking:
// the buyer marks the work complete, then the seller confirms payment.
package completion

import (
	"errors"

	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
)

type State string

const (
	StateAssigned        State = "assigned"
	StateBuyerConfirmed  State = "buyer_confirmed"
	StateSellerConfirmed State = "seller_confirmed"
)

// StatusCompleted is the owning record status once both flags are set.
const StatusCompleted = "completed"

type Event string

const (
	EventBuyerMarkedComplete    Event = "buyer_marked_complete"
	EventSellerConfirmedPayment Event = "seller_confirmed_payment"
)

type ActionKind string

const (
	ActionMarkComplete   ActionKind = "mark_complete"
	ActionConfirmPayment ActionKind = "confirm_payment"
)

var (
	ErrActionDisabled = errors.New("completion: action disabled")
	ErrUnknownEvent   = errors.New("completion: unknown event")
)

// Props is the immutable input of the completion card.
type Props struct {
	Status                string               `json:"status"`
	BuyerMarkedComplete   bool                 `json:"buyer_marked_complete"`
	SellerMarkedComplete  bool                 `json:"seller_marked_complete"`
	ContractFullyExecuted bool                 `json:"contract_fully_executed"`
	PaymentMethod         models.PaymentMethod `json:"payment_method"`
}

func (p Props) State() State {
	switch {
	case p.SellerMarkedComplete || p.Status == StatusCompleted:
		return StateSellerConfirmed
	case p.BuyerMarkedComplete:
		return StateBuyerConfirmed
	}
	return StateAssigned
}

func canMarkComplete(p Props) bool {
	return p.State() == StateAssigned && p.ContractFullyExecuted
}

func canConfirmPayment(p Props) bool {
	return p.State() == StateBuyerConfirmed
}

// Reduce applies an event to props. Disallowed events leave props untouched.
func Reduce(p Props, ev Event) (Props, error) {
	switch ev {
	case EventBuyerMarkedComplete:
		if !canMarkComplete(p) {
			return p, ErrActionDisabled
		}
		p.BuyerMarkedComplete = true
	case EventSellerConfirmedPayment:
		if !canConfirmPayment(p) {
			return p, ErrActionDisabled
		}
		p.SellerMarkedComplete = true
		p.Status = StatusCompleted
	default:
		return p, ErrUnknownEvent
	}
	return p, nil
}

type Action struct {
	Kind    ActionKind `json:"kind"`
	Label   string     `json:"label"`
	Enabled bool       `json:"enabled"`
	Reason  string     `json:"reason,omitempty"`
}

// ViewModel is what a party sees on the completion card.
type ViewModel struct {
	Role      models.Role `json:"role"`
	State     State       `json:"state"`
	Progress  int         `json:"progress"`
	Banner    string      `json:"banner"`
	BannerKey i18n.Key    `json:"banner_key"`
	Terminal  bool        `json:"terminal"`
	Actions   []Action    `json:"actions"`
}

// Enabled reports whether the view offers kind as an enabled action.
func (v ViewModel) Enabled(kind ActionKind) bool {
	for _, a := range v.Actions {
		if a.Kind == kind {
			return a.Enabled
		}
	}
	return false
}

var progress = map[State]int{
	StateAssigned:        0,
	StateBuyerConfirmed:  50,
	StateSellerConfirmed: 100,
}

// View renders the card for role. It is a pure function of its inputs.
func View(role models.Role, p Props, lang i18n.Language) ViewModel {
	cat := i18n.Lookup(lang)
	state := p.State()
	v := ViewModel{Role: role, State: state, Progress: progress[state], Actions: []Action{}}

	if state == StateSellerConfirmed {
		v.Terminal = true
		v.BannerKey = i18n.CompletionDone
		v.Banner = cat.Text(v.BannerKey)
		return v
	}

	switch role {
	case models.RoleBuyer:
		if state == StateAssigned {
			a := Action{Kind: ActionMarkComplete, Label: cat.Text(i18n.ActionMarkComplete), Enabled: canMarkComplete(p)}
			if p.ContractFullyExecuted {
				v.BannerKey = i18n.CompletionReadyToMark
			} else {
				v.BannerKey = i18n.CompletionContractPending
				a.Reason = cat.Text(i18n.CompletionContractPending)
			}
			v.Actions = append(v.Actions, a)
		} else {
			v.BannerKey = i18n.CompletionAwaitingPaymentOnline
			if p.PaymentMethod == models.PaymentCash {
				v.BannerKey = i18n.CompletionAwaitingPaymentCash
			}
		}
	case models.RoleSeller:
		a := Action{Kind: ActionConfirmPayment, Label: cat.Text(i18n.ActionConfirmPayment), Enabled: canConfirmPayment(p)}
		if state == StateAssigned {
			v.BannerKey = i18n.CompletionAwaitingBuyer
			a.Reason = cat.Text(i18n.CompletionAwaitingBuyer)
		} else {
			v.BannerKey = i18n.CompletionConfirmPayment
		}
		v.Actions = append(v.Actions, a)
	default:
		v.BannerKey = i18n.CompletionAwaitingBuyer
		if state == StateBuyerConfirmed {
			v.BannerKey = i18n.CompletionConfirmPayment
		}
	}
	v.Banner = cat.Text(v.BannerKey)
	return v
}
