package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"sanaaBack/internal/config"
	"sanaaBack/internal/handlers"
	"sanaaBack/internal/i18n"
	"sanaaBack/internal/marketplace/celebration"
	"sanaaBack/internal/marketplace/completion"
	"sanaaBack/internal/marketplace/negotiation"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/realtime/ws"
	"sanaaBack/internal/repositories"
	"sanaaBack/internal/services"
	"sanaaBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	redis    *redis.Client

	tokenManager *utils.Manager
	userLanguage func(ctx context.Context, userID string) i18n.Language
	hub          *ws.Hub

	paymentReminders *services.PaymentReminderService

	profileHandler            *handlers.ProfileHandler
	maintenanceRequestHandler *handlers.MaintenanceRequestHandler
	quoteHandler              *handlers.QuoteHandler
	negotiationHandler        *handlers.NegotiationHandler
	quoteTemplateHandler      *handlers.QuoteTemplateHandler
	bookingHandler            *handlers.BookingHandler
	contractHandler           *handlers.ContractHandler
	completionHandler         *handlers.CompletionHandler
	journeyHandler            *handlers.JourneyHandler
	chatHandler               *handlers.ChatHandler
	celebrationHandler        *handlers.CelebrationHandler
	notifyTokenHandler        *handlers.NotifyTokenHandler
}

func initializeApp(ctx context.Context, cfg config.Config, db *sql.DB, errorLog, infoLog *log.Logger, slogger *slog.Logger) (*application, error) {
	logger := logAdapter{info: infoLog, err: errorLog}

	dialect, err := repositories.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	// Realtime fan-out and one-shot keys go through Redis when configured so
	// that several instances agree; a single instance can run in memory.
	var (
		redisClient *redis.Client
		broker      realtime.Broker
		once        celebration.OnceStore
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		broker = realtime.NewRedisBroker(redisClient, logger)
		once = celebration.NewRedisOnce(redisClient)
		infoLog.Printf("Connected to redis at %s", cfg.Redis.Addr)
	} else {
		broker = realtime.NewMemoryBroker()
		once = celebration.NewMemoryOnce()
		infoLog.Print("Redis not configured, using in-memory realtime broker")
	}

	messagingClient, err := newMessagingClient(ctx, cfg.Firebase.CredentialsFile)
	if err != nil {
		return nil, err
	}
	if messagingClient == nil {
		infoLog.Print("Firebase credentials not configured, push notifications disabled")
	}

	var uploader *utils.S3Uploader
	if cfg.StorageEnabled() {
		uploader, err = utils.NewS3Uploader(utils.StorageConfig{
			Endpoint:      cfg.Storage.Endpoint,
			Region:        cfg.Storage.Region,
			Bucket:        cfg.Storage.Bucket,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
	}

	tokenManager, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	// Repositories
	profileRepo := repositories.NewProfileRepository(db, dialect)
	requestRepo := repositories.NewMaintenanceRequestRepository(db, dialect)
	bookingRepo := repositories.NewBookingRequestRepository(db, dialect)
	quoteRepo := repositories.NewQuoteSubmissionRepository(db, dialect)
	negotiationRepo := repositories.NewQuoteNegotiationRepository(db, dialect)
	templateRepo := repositories.NewQuoteTemplateRepository(db, dialect)
	contractRepo := repositories.NewContractRepository(db, dialect)
	completionRepo := repositories.NewCompletionRepository(db, dialect)
	chatRepo := repositories.NewChatMessageRepository(db, dialect)
	notifyTokenRepo := repositories.NewNotifyTokenRepository(db, dialect)

	hub := ws.NewHub(broker, cfg.Realtime.Debounce, logger)

	// Services
	profileService := &services.ProfileService{
		ProfileRepo:  profileRepo,
		TokenManager: tokenManager,
		Uploader:     uploader,
		Broker:       broker,
		AccessTTL:    cfg.JWT.AccessTTL,
		RefreshTTL:   cfg.JWT.RefreshTTL,
	}
	notificationService := &services.NotificationService{
		Client:    messagingClient,
		TokenRepo: notifyTokenRepo,
		Logger:    slogger,
	}
	celebrations := celebration.NewDispatcher(celebration.Config{
		Once:     once,
		Notifier: notificationService,
		Pusher:   hub,
		Language: profileService.Language,
		Logger:   logger,
	})

	var verificationService *services.VerificationEmailService
	if cfg.Verification.Endpoint != "" {
		verificationService, err = services.NewVerificationEmailService(services.VerificationConfig{
			Endpoint: cfg.Verification.Endpoint,
			Secret:   cfg.Verification.Secret,
			Cooldown: cfg.Verification.ResendCooldown,
			Timeout:  cfg.Verification.Timeout,
			Once:     once,
			Client:   &http.Client{Timeout: cfg.Verification.Timeout},
			Logger:   slogger,
		})
		if err != nil {
			return nil, err
		}
	}

	requestService := &services.MaintenanceRequestService{RequestRepo: requestRepo, Broker: broker, Celebrations: celebrations}
	quoteService := &services.QuoteService{QuoteRepo: quoteRepo, RequestRepo: requestRepo, Broker: broker}
	templateService := &services.QuoteTemplateService{TemplateRepo: templateRepo}
	bookingService := &services.BookingService{
		BookingRepo:  bookingRepo,
		Broker:       broker,
		Celebrations: celebrations,
		DisplayName:  profileService.DisplayName,
	}
	contractService := &services.ContractService{
		ContractRepo:    contractRepo,
		BookingRepo:     bookingRepo,
		QuoteRepo:       quoteRepo,
		RequestRepo:     requestRepo,
		NegotiationRepo: negotiationRepo,
		Broker:          broker,
		Celebrations:    celebrations,
		DisplayName:     profileService.DisplayName,
	}
	journeyService := &services.JourneyService{
		BookingRepo:  bookingRepo,
		QuoteRepo:    quoteRepo,
		RequestRepo:  requestRepo,
		ContractRepo: contractRepo,
	}
	chatService := &services.ChatService{ChatRepo: chatRepo, Broker: broker}

	negotiationService := negotiation.NewService(negotiationRepo, nil)
	negotiationService.OnChange = services.NegotiationChanged(broker)

	completionService := completion.NewService(completionRepo, nil)
	completionService.OnChange = services.CompletionChanged(broker)

	paymentReminders := &services.PaymentReminderService{
		Pending:     completionRepo,
		Notifier:    notificationService,
		Once:        once,
		Language:    profileService.Language,
		DisplayName: profileService.DisplayName,
		Interval:    cfg.Reminders.Interval,
	}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		db:               db,
		redis:            redisClient,
		tokenManager:     tokenManager,
		userLanguage:     profileService.Language,
		hub:              hub,
		paymentReminders: paymentReminders,

		profileHandler:            &handlers.ProfileHandler{Service: profileService, Verification: verificationService},
		maintenanceRequestHandler: &handlers.MaintenanceRequestHandler{Service: requestService},
		quoteHandler:              &handlers.QuoteHandler{Service: quoteService},
		negotiationHandler:        &handlers.NegotiationHandler{Service: negotiationService},
		quoteTemplateHandler:      &handlers.QuoteTemplateHandler{Service: templateService},
		bookingHandler:            &handlers.BookingHandler{Service: bookingService},
		contractHandler:           &handlers.ContractHandler{Service: contractService},
		completionHandler:         &handlers.CompletionHandler{Service: completionService},
		journeyHandler:            &handlers.JourneyHandler{Service: journeyService},
		chatHandler:               &handlers.ChatHandler{Service: chatService},
		celebrationHandler:        &handlers.CelebrationHandler{},
		notifyTokenHandler:        &handlers.NotifyTokenHandler{Service: notificationService},
	}, nil
}

func (app *application) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.errorLog.Printf("redis close: %v", err)
		}
	}
}

// newMessagingClient returns nil when no credentials file is configured.
func newMessagingClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	if credentialsFile == "" {
		return nil, nil
	}
	fbApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := fbApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return client, nil
}

func openDB(driver, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
