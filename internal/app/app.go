package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	otelsql "github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/northcourt/club-api/external/blobstore"
	"github.com/northcourt/club-api/external/mailer"
	"github.com/northcourt/club-api/external/paygate"
	"github.com/northcourt/club-api/internal/config"
	"github.com/northcourt/club-api/internal/infrastructure/repository/postgres"
	"github.com/northcourt/club-api/internal/interfaces/httpapi"
	"github.com/northcourt/club-api/internal/notify"
	idgen "github.com/northcourt/club-api/internal/platform/id"
	"github.com/northcourt/club-api/internal/platform/logging"
	"github.com/northcourt/club-api/internal/platform/resilience"
	"github.com/northcourt/club-api/internal/platform/token"
	"github.com/northcourt/club-api/internal/usecase"
)

// App bundles the HTTP server with the resources that need a
// coordinated shutdown.
type App struct {
	Server     *http.Server
	Dispatcher *notify.Dispatcher
	db         *sqlx.DB
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	signer, err := token.NewSigner(cfg.AuthTokenSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create token signer: %w", err)
	}

	regRepo := postgres.NewRegistrationRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	programRepo := postgres.NewProgramRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	contentRepo := postgres.NewContentRepository(db)

	clientLogger := logging.Default()

	var sender notify.Sender
	if cfg.MailEnabled {
		sender = mailer.NewClient(mailer.ClientConfig{
			BaseURL:   cfg.MailBaseURL,
			APIKey:    cfg.MailAPIKey,
			FromEmail: cfg.MailFrom,
			Timeout:   cfg.MailTimeout,
			Logger:    clientLogger,
		})
	} else {
		logger.Warn("mail is disabled, notifications will be dropped")
	}

	dispatcher, err := notify.NewDispatcher(sender, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create notification dispatcher: %w", err)
	}

	var uploader usecase.WaiverUploader
	if cfg.BlobEnabled {
		uploader = blobstore.NewClient(blobstore.ClientConfig{
			BaseURL:   cfg.BlobBaseURL,
			Bucket:    cfg.BlobBucket,
			AccessKey: cfg.BlobAccessKey,
			Timeout:   cfg.BlobTimeout,
			Logger:    clientLogger,
		})
	} else {
		logger.Warn("blob storage is disabled, waiver uploads will fail")
	}

	var gateway usecase.PaymentGateway
	if cfg.PaygateEnabled {
		gateway = paygate.NewClient(paygate.ClientConfig{
			BaseURL:   cfg.PaygateBaseURL,
			AccountID: cfg.PaygateAccountID,
			APIToken:  cfg.PaygateAPIToken,
			Timeout:   cfg.PaygateTimeout,
			Logger:    clientLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PaygateCircuitEnabled,
				FailureThreshold: cfg.PaygateCircuitFailureCount,
				OpenTimeout:      cfg.PaygateCircuitOpenTimeout,
			},
		})
	} else {
		logger.Warn("payment gateway is disabled, card charges will fail")
	}

	idGen := idgen.NewRandomGenerator()

	regSvc := usecase.NewRegistrationService(
		regRepo,
		teamRepo,
		programRepo,
		paymentRepo,
		uploader,
		dispatcher,
		idGen,
		cfg.NotifyAdminEmail,
		cfg.Currency,
		logger,
	)
	checkoutSvc := usecase.NewCheckoutService(
		gateway,
		regSvc,
		programRepo,
		contentRepo,
		orderRepo,
		idGen,
		cfg.Currency,
		logger,
	)
	authSvc := usecase.NewAuthService(signer, cfg.AdminEmail, cfg.AdminPassword, cfg.SessionTTL, logger)
	paymentsView := usecase.NewPaymentsViewService(paymentRepo, orderRepo, logger)
	contactSvc := usecase.NewContactService(contactRepo, idGen, logger)
	teamSvc := usecase.NewTeamService(teamRepo, idGen, logger)
	programSvc := usecase.NewProgramService(programRepo, idGen, logger)
	contentSvc := usecase.NewContentService(contentRepo, idGen, logger)

	handler := httpapi.NewHandler(
		authSvc,
		regSvc,
		checkoutSvc,
		paymentsView,
		contactSvc,
		teamSvc,
		programSvc,
		contentSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:     server,
		Dispatcher: dispatcher,
		db:         db,
	}, nil
}

// Close drains the notification pool and releases the database.
func (a *App) Close() {
	a.Dispatcher.Close()
	_ = a.db.Close()
}
