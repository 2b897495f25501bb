package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"sanaaBack/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, detectLanguage)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	sellerMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleSeller))

	mux := pat.New()

	mux.Get("/health", standardMiddleware.ThenFunc(app.health))

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.profileHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.profileHandler.SignIn))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.profileHandler.Refresh))
	mux.Post("/auth/sign_out", authMiddleware.ThenFunc(app.profileHandler.SignOut))
	mux.Post("/auth/verification/resend", authMiddleware.ThenFunc(app.profileHandler.ResendVerification))

	// Profile
	mux.Get("/profile", authMiddleware.ThenFunc(app.profileHandler.GetMe))
	mux.Put("/profile", authMiddleware.ThenFunc(app.profileHandler.UpdateMe))
	mux.Post("/profile/portfolio", sellerMiddleware.ThenFunc(app.profileHandler.AddPortfolioPhoto))
	mux.Get("/profile/:id", authMiddleware.ThenFunc(app.profileHandler.GetByID))

	mux.Post("/notify/token", authMiddleware.ThenFunc(app.notifyTokenHandler.Register))

	// Maintenance requests
	mux.Post("/requests", authMiddleware.ThenFunc(app.maintenanceRequestHandler.Create))
	mux.Get("/requests", authMiddleware.ThenFunc(app.maintenanceRequestHandler.List))
	mux.Get("/requests/:id/quotes", authMiddleware.ThenFunc(app.quoteHandler.ListForRequest))
	mux.Post("/requests/:id/quotes", sellerMiddleware.ThenFunc(app.quoteHandler.Submit))
	mux.Post("/requests/:id/close", authMiddleware.ThenFunc(app.maintenanceRequestHandler.Close))
	mux.Get("/requests/:id", authMiddleware.ThenFunc(app.maintenanceRequestHandler.Get))

	// Quotes
	mux.Get("/quotes/me", sellerMiddleware.ThenFunc(app.quoteHandler.ListMine))
	mux.Post("/quotes/:id/revision", authMiddleware.ThenFunc(app.quoteHandler.RequestRevision))
	mux.Post("/quotes/:id/reject", authMiddleware.ThenFunc(app.quoteHandler.Reject))
	mux.Get("/quotes/:id", authMiddleware.ThenFunc(app.quoteHandler.Get))
	mux.Put("/quotes/:id", sellerMiddleware.ThenFunc(app.quoteHandler.Revise))
	mux.Get("/quotes/:id/negotiations", authMiddleware.ThenFunc(app.negotiationHandler.List))
	mux.Post("/quotes/:id/negotiations", authMiddleware.ThenFunc(app.negotiationHandler.Create))
	mux.Post("/negotiations/:id/accept", authMiddleware.ThenFunc(app.negotiationHandler.Accept))
	mux.Post("/negotiations/:id/decline", authMiddleware.ThenFunc(app.negotiationHandler.Decline))

	// Quote templates
	mux.Get("/quote_templates", sellerMiddleware.ThenFunc(app.quoteTemplateHandler.List))
	mux.Post("/quote_templates", sellerMiddleware.ThenFunc(app.quoteTemplateHandler.Create))
	mux.Put("/quote_templates/:id", sellerMiddleware.ThenFunc(app.quoteTemplateHandler.Update))
	mux.Del("/quote_templates/:id", sellerMiddleware.ThenFunc(app.quoteTemplateHandler.Delete))

	// Bookings
	mux.Post("/bookings", authMiddleware.ThenFunc(app.bookingHandler.Create))
	mux.Get("/bookings/me", authMiddleware.ThenFunc(app.bookingHandler.ListMine))
	mux.Get("/bookings/:id", authMiddleware.ThenFunc(app.bookingHandler.Get))
	mux.Post("/bookings/:id/accept", sellerMiddleware.ThenFunc(app.bookingHandler.Accept))
	mux.Post("/bookings/:id/decline", authMiddleware.ThenFunc(app.bookingHandler.Decline))
	mux.Post("/bookings/:id/counter", sellerMiddleware.ThenFunc(app.bookingHandler.Counter))
	mux.Post("/bookings/:id/accept_counter", authMiddleware.ThenFunc(app.bookingHandler.AcceptCounter))
	mux.Post("/bookings/:id/cancel", authMiddleware.ThenFunc(app.bookingHandler.Cancel))

	// Contracts
	mux.Post("/contracts", authMiddleware.ThenFunc(app.contractHandler.Create))
	mux.Get("/contracts/:id", authMiddleware.ThenFunc(app.contractHandler.Get))
	mux.Post("/contracts/:id/send", authMiddleware.ThenFunc(app.contractHandler.Send))
	mux.Post("/contracts/:id/sign", authMiddleware.ThenFunc(app.contractHandler.Sign))

	// Completion and progress
	mux.Get("/completion", authMiddleware.ThenFunc(app.completionHandler.Get))
	mux.Post("/completion/mark_complete", authMiddleware.ThenFunc(app.completionHandler.MarkComplete))
	mux.Post("/completion/confirm_payment", authMiddleware.ThenFunc(app.completionHandler.ConfirmPayment))
	mux.Get("/journey", authMiddleware.ThenFunc(app.journeyHandler.Get))

	// Chat
	mux.Get("/chat/:thread_type/:thread_id", authMiddleware.ThenFunc(app.chatHandler.List))
	mux.Post("/chat/:thread_type/:thread_id", authMiddleware.ThenFunc(app.chatHandler.Send))

	mux.Post("/celebrations/:kind/continue", authMiddleware.ThenFunc(app.celebrationHandler.Continue))

	// Realtime
	mux.Get("/ws", alice.New(app.recoverPanic, app.logRequest).ThenFunc(app.serveWS))

	return mux
}
