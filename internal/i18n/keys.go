package i18n

// Journey stages.
const (
	StageRequestSent     Key = "journey.request_sent"
	StageRequestReceived Key = "journey.request_received"
	StageSellerAccepted  Key = "journey.seller_accepted"
	StageBookingAccepted Key = "journey.booking_accepted"
	StageJobPosted       Key = "journey.job_posted"
	StageQuoteSubmitted  Key = "journey.quote_submitted"
	StageQuoteSelected   Key = "journey.quote_selected"
	StageQuoteAccepted   Key = "journey.quote_accepted"
	StageContractSigned  Key = "journey.contract_signed"
	StageBuyerSigned     Key = "journey.buyer_signed"
	StageJobActive       Key = "journey.job_active"
)

// Completion card.
const (
	CompletionContractPending       Key = "completion.contract_pending"
	CompletionReadyToMark           Key = "completion.ready_to_mark"
	CompletionAwaitingBuyer         Key = "completion.awaiting_buyer"
	CompletionAwaitingPaymentOnline Key = "completion.awaiting_payment_online"
	CompletionAwaitingPaymentCash   Key = "completion.awaiting_payment_cash"
	CompletionConfirmPayment        Key = "completion.confirm_payment"
	CompletionDone                  Key = "completion.done"
	ActionMarkComplete              Key = "completion.action.mark_complete"
	ActionConfirmPayment            Key = "completion.action.confirm_payment"
)

// Celebration screens and reminders.
const (
	BookingConfirmedTitle Key = "celebration.booking_confirmed.title"
	BookingConfirmedBody  Key = "celebration.booking_confirmed.body"
	ContractExecutedTitle Key = "celebration.contract_executed.title"
	ContractExecutedBody  Key = "celebration.contract_executed.body"
	JobWonTitle           Key = "celebration.job_won.title"
	JobWonBody            Key = "celebration.job_won.body"
	RequestSubmittedTitle Key = "celebration.request_submitted.title"
	RequestSubmittedBody  Key = "celebration.request_submitted.body"
	ContinueLabel         Key = "celebration.continue"
	PaymentReminderTitle  Key = "reminder.confirm_payment.title"
	PaymentReminderBody   Key = "reminder.confirm_payment.body"
)

// Errors shown to the user.
const (
	ErrInvalidRequest     Key = "error.invalid_request"
	ErrUnauthorized       Key = "error.unauthorized"
	ErrForbidden          Key = "error.forbidden"
	ErrNotFound           Key = "error.not_found"
	ErrConflict           Key = "error.conflict"
	ErrInternal           Key = "error.internal"
	ErrInvalidTransition  Key = "error.invalid_transition"
	ErrEmptyOffer         Key = "error.empty_offer"
	ErrInvalidPrice       Key = "error.invalid_price"
	ErrOfferClosed        Key = "error.offer_closed"
	ErrOwnOffer           Key = "error.own_offer"
	ErrInvalidCredentials Key = "error.invalid_credentials"
	ErrDuplicateEmail     Key = "error.duplicate_email"
	ErrActionDisabled     Key = "error.action_disabled"
	ErrResendCooldown     Key = "error.resend_cooldown"
	ErrEmailFailed        Key = "error.email_failed"
	ErrInvalidImage       Key = "error.invalid_image"
	ErrUnknownReference   Key = "error.unknown_reference"
)
