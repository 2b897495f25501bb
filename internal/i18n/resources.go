package i18n

var resources = map[Language]map[Key]string{
	English: {
		StageRequestSent:     "Request sent",
		StageRequestReceived: "Request received",
		StageSellerAccepted:  "Seller accepted",
		StageBookingAccepted: "Booking accepted",
		StageJobPosted:       "Job posted",
		StageQuoteSubmitted:  "Quote submitted",
		StageQuoteSelected:   "Quote selected",
		StageQuoteAccepted:   "Quote accepted",
		StageContractSigned:  "Contract signed",
		StageBuyerSigned:     "Buyer signed",
		StageJobActive:       "Job active",

		CompletionContractPending:       "Both parties must sign the contract before the job can be marked complete.",
		CompletionReadyToMark:           "Mark the job complete once the work is done.",
		CompletionAwaitingBuyer:         "Waiting for the buyer to mark the job complete.",
		CompletionAwaitingPaymentOnline: "Waiting for the seller to confirm the online payment.",
		CompletionAwaitingPaymentCash:   "Waiting for the seller to confirm the cash payment.",
		CompletionConfirmPayment:        "The buyer marked the job complete. Confirm once you receive the payment.",
		CompletionDone:                  "Job completed.",
		ActionMarkComplete:              "Mark complete",
		ActionConfirmPayment:            "Confirm payment received",

		BookingConfirmedTitle: "Booking confirmed!",
		BookingConfirmedBody:  "Your booking with %s is confirmed.",
		ContractExecutedTitle: "Contract executed",
		ContractExecutedBody:  "Your contract with %s is now active.",
		JobWonTitle:           "You won the job!",
		JobWonBody:            "%s accepted your quote.",
		RequestSubmittedTitle: "Request submitted",
		RequestSubmittedBody:  "Your request \"%s\" is live. Sellers can now send quotes.",
		ContinueLabel:         "Continue",
		PaymentReminderTitle:  "Payment confirmation pending",
		PaymentReminderBody:   "%s marked the job complete. Please confirm the payment.",

		ErrInvalidRequest:     "Invalid request.",
		ErrUnauthorized:       "Please sign in to continue.",
		ErrForbidden:          "You are not allowed to perform this action.",
		ErrNotFound:           "Not found.",
		ErrConflict:           "This action conflicts with the current state.",
		ErrInternal:           "Something went wrong. Please try again.",
		ErrInvalidTransition:  "This action is no longer available.",
		ErrEmptyOffer:         "Enter a price, a duration or a message.",
		ErrInvalidPrice:       "The price must be greater than zero.",
		ErrOfferClosed:        "This offer has already been answered.",
		ErrOwnOffer:           "You cannot answer your own offer.",
		ErrInvalidCredentials: "Invalid email or password.",
		ErrDuplicateEmail:     "This email is already registered.",
		ErrActionDisabled:     "This action is not available yet.",
		ErrResendCooldown:     "Please wait before requesting another email.",
		ErrEmailFailed:        "Could not send the verification email.",
		ErrInvalidImage:       "Unsupported image.",
		ErrUnknownReference:   "A referenced record does not exist.",
	},
	Arabic: {
		StageRequestSent:     "تم إرسال الطلب",
		StageRequestReceived: "تم استلام الطلب",
		StageSellerAccepted:  "وافق مقدم الخدمة",
		StageBookingAccepted: "تم قبول الحجز",
		StageJobPosted:       "تم نشر الطلب",
		StageQuoteSubmitted:  "تم تقديم العرض",
		StageQuoteSelected:   "تم اختيار العرض",
		StageQuoteAccepted:   "تم قبول العرض",
		StageContractSigned:  "تم توقيع العقد",
		StageBuyerSigned:     "وقّع العميل",
		StageJobActive:       "العمل جارٍ",

		CompletionContractPending:       "يجب أن يوقّع الطرفان على العقد قبل تأكيد اكتمال العمل.",
		CompletionReadyToMark:           "أكّد اكتمال العمل عند الانتهاء منه.",
		CompletionAwaitingBuyer:         "بانتظار تأكيد العميل لاكتمال العمل.",
		CompletionAwaitingPaymentOnline: "بانتظار تأكيد مقدم الخدمة لاستلام الدفع الإلكتروني.",
		CompletionAwaitingPaymentCash:   "بانتظار تأكيد مقدم الخدمة لاستلام الدفع النقدي.",
		CompletionConfirmPayment:        "أكّد العميل اكتمال العمل. أكّد استلام الدفعة عند وصولها.",
		CompletionDone:                  "اكتمل العمل.",
		ActionMarkComplete:              "تأكيد الاكتمال",
		ActionConfirmPayment:            "تأكيد استلام الدفعة",

		BookingConfirmedTitle: "تم تأكيد الحجز!",
		BookingConfirmedBody:  "تم تأكيد حجزك مع %s.",
		ContractExecutedTitle: "تم تنفيذ العقد",
		ContractExecutedBody:  "أصبح عقدك مع %s ساريًا.",
		JobWonTitle:           "لقد فزت بالعمل!",
		JobWonBody:            "قبل %s عرضك.",
		RequestSubmittedTitle: "تم إرسال طلبك",
		RequestSubmittedBody:  "طلبك \"%s\" منشور الآن ويمكن لمقدمي الخدمة إرسال عروضهم.",
		ContinueLabel:         "متابعة",
		PaymentReminderTitle:  "تأكيد الدفع معلّق",
		PaymentReminderBody:   "أكّد %s اكتمال العمل. يرجى تأكيد استلام الدفعة.",

		ErrInvalidRequest:     "طلب غير صالح.",
		ErrUnauthorized:       "يرجى تسجيل الدخول للمتابعة.",
		ErrForbidden:          "غير مسموح لك بتنفيذ هذا الإجراء.",
		ErrNotFound:           "غير موجود.",
		ErrConflict:           "يتعارض هذا الإجراء مع الحالة الحالية.",
		ErrInternal:           "حدث خطأ ما. يرجى المحاولة مرة أخرى.",
		ErrInvalidTransition:  "هذا الإجراء لم يعد متاحًا.",
		ErrEmptyOffer:         "أدخل سعرًا أو مدة أو رسالة.",
		ErrInvalidPrice:       "يجب أن يكون السعر أكبر من صفر.",
		ErrOfferClosed:        "تم الرد على هذا العرض مسبقًا.",
		ErrOwnOffer:           "لا يمكنك الرد على عرضك.",
		ErrInvalidCredentials: "البريد الإلكتروني أو كلمة المرور غير صحيحة.",
		ErrDuplicateEmail:     "هذا البريد الإلكتروني مسجل مسبقًا.",
		ErrActionDisabled:     "هذا الإجراء غير متاح بعد.",
		ErrResendCooldown:     "يرجى الانتظار قبل طلب رسالة أخرى.",
		ErrEmailFailed:        "تعذّر إرسال رسالة التحقق.",
		ErrInvalidImage:       "صورة غير مدعومة.",
		ErrUnknownReference:   "السجل المشار إليه غير موجود.",
	},
}
