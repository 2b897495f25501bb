// Package journey holds the fixed four-checkpoint progress model shown for
// bookings and quotes, and derives the current checkpoint from raw status data.
package journey

import (
	"sanaaBack/internal/i18n"
	"sanaaBack/internal/models"
)

type FlowType string

const (
	FlowBooking FlowType = "booking"
	FlowQuote   FlowType = "quote"
)

func (f FlowType) Valid() bool {
	return f == FlowBooking || f == FlowQuote
}

// Stage indexes.
const (
	StageStart = iota
	StageAgreed
	StageBuyerSigned
	StageActive
)

// Stage is a single checkpoint.
type Stage struct {
	Key   string
	Label i18n.Key
}

var stages = map[FlowType]map[models.Role][4]Stage{
	FlowBooking: {
		models.RoleBuyer: {
			{Key: "request_sent", Label: i18n.StageRequestSent},
			{Key: "seller_accepted", Label: i18n.StageSellerAccepted},
			{Key: "contract_signed", Label: i18n.StageContractSigned},
			{Key: "job_active", Label: i18n.StageJobActive},
		},
		models.RoleSeller: {
			{Key: "request_received", Label: i18n.StageRequestReceived},
			{Key: "booking_accepted", Label: i18n.StageBookingAccepted},
			{Key: "buyer_signed", Label: i18n.StageBuyerSigned},
			{Key: "job_active", Label: i18n.StageJobActive},
		},
	},
	FlowQuote: {
		models.RoleBuyer: {
			{Key: "job_posted", Label: i18n.StageJobPosted},
			{Key: "quote_selected", Label: i18n.StageQuoteSelected},
			{Key: "contract_signed", Label: i18n.StageContractSigned},
			{Key: "job_active", Label: i18n.StageJobActive},
		},
		models.RoleSeller: {
			{Key: "quote_submitted", Label: i18n.StageQuoteSubmitted},
			{Key: "quote_accepted", Label: i18n.StageQuoteAccepted},
			{Key: "buyer_signed", Label: i18n.StageBuyerSigned},
			{Key: "job_active", Label: i18n.StageJobActive},
		},
	},
}

// Stages returns the ordered checkpoints for a flow and role.
func Stages(flow FlowType, role models.Role) ([]Stage, bool) {
	byRole, ok := stages[flow]
	if !ok {
		return nil, false
	}
	s, ok := byRole[role]
	if !ok {
		return nil, false
	}
	return s[:], true
}

// StatusData is the flat bag of optional status fields the deriver reads.
// Zero values mean "not known".
type StatusData struct {
	BookingStatus  models.BookingStatus  `json:"booking_status,omitempty"`
	ContractStatus models.ContractStatus `json:"contract_status,omitempty"`
	BuyerSigned    bool                  `json:"buyer_signed,omitempty"`
	SellerSigned   bool                  `json:"seller_signed,omitempty"`
	QuoteStatus    models.QuoteStatus    `json:"quote_status,omitempty"`
	RequestStatus  models.RequestStatus  `json:"request_status,omitempty"`
}

// DeriveStageIndex maps status data to a checkpoint index in [0, 3].
// Any existing contract, including an unsent draft, counts as the agreed stage.
func DeriveStageIndex(flow FlowType, role models.Role, d StatusData) int {
	if d.BuyerSigned && d.SellerSigned {
		return StageActive
	}
	hasContract := d.ContractStatus != ""
	switch flow {
	case FlowBooking:
		if d.BuyerSigned {
			return StageBuyerSigned
		}
		if d.BookingStatus == models.BookingAccepted || d.BookingStatus == models.BookingContractPending || hasContract {
			return StageAgreed
		}
	case FlowQuote:
		if d.BuyerSigned {
			return StageBuyerSigned
		}
		if d.QuoteStatus == models.QuoteAccepted || hasContract {
			return StageAgreed
		}
	}
	return StageStart
}

// FromRecords collects status data from whichever records are known.
func FromRecords(booking *models.BookingRequest, quote *models.QuoteSubmission, request *models.MaintenanceRequest, contract *models.Contract) StatusData {
	var d StatusData
	if booking != nil {
		d.BookingStatus = booking.Status
	}
	if quote != nil {
		d.QuoteStatus = quote.Status
	}
	if request != nil {
		d.RequestStatus = request.Status
	}
	if contract != nil {
		d.ContractStatus = contract.Status
		d.BuyerSigned = contract.BuyerSignedAt != nil
		d.SellerSigned = contract.SellerSignedAt != nil
	}
	return d
}

// View is a localized rendering of the journey.
type View struct {
	Flow      FlowType    `json:"flow"`
	Role      models.Role `json:"role"`
	Current   int         `json:"current"`
	Direction string      `json:"direction"`
	Stages    []ViewStage `json:"stages"`
}

type ViewStage struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Label   string `json:"label"`
	Done    bool   `json:"done"`
	Current bool   `json:"current"`
}

// Render builds the localized view for the given status data.
func Render(flow FlowType, role models.Role, d StatusData, lang i18n.Language) (View, bool) {
	list, ok := Stages(flow, role)
	if !ok {
		return View{}, false
	}
	cat := i18n.Lookup(lang)
	current := DeriveStageIndex(flow, role, d)
	v := View{Flow: flow, Role: role, Current: current, Direction: cat.Direction, Stages: make([]ViewStage, 0, len(list))}
	for i, s := range list {
		v.Stages = append(v.Stages, ViewStage{
			Index:   i,
			Key:     s.Key,
			Label:   cat.Text(s.Label),
			Done:    i < current,
			Current: i == current,
		})
	}
	return v, true
}
