package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"fieldops/application"
	"fieldops/database"
	"fieldops/domain/contracts"
	"fieldops/domain/lifecycle"
	"fieldops/infrastructure/config"
	"fieldops/infrastructure/repositories"
	"fieldops/interfaces/api/handlers"
	"fieldops/interfaces/api/presenters"
	"fieldops/logging"
	"fieldops/platform/events"
	"fieldops/platform/sweep"
)

func main() {
	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Build dependencies
	deps := buildDependencies(db, cfg, logger)

	// Start background sweep
	if err := deps.SweepScheduler.Start(); err != nil {
		logger.Error("Failed to start sweep scheduler", "error", err)
		os.Exit(1)
	}

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, deps)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	JobService       application.JobService
	OrderService     application.OrderService
	AgendaService    application.AgendaService
	ReportService    application.ReportService
	LifecycleService *application.LifecycleService
	EventBus         *events.LifecycleEventBus
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	// Presenters
	JobPresenter       *presenters.JobPresenter
	FieldworkPresenter *presenters.FieldworkPresenter
	AgendaPresenter    *presenters.AgendaPresenter
	ReportPresenter    *presenters.ReportPresenter

	// Handlers
	JobHandlers    *handlers.JobHandlers
	OrderHandlers  *handlers.OrderHandlers
	AgendaHandlers *handlers.AgendaHandlers
	ReportHandlers *handlers.ReportHandlers
	WorkerHandlers *handlers.WorkerHandlers
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	DB     *database.Database
	Logger *logging.Logger

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer

	// Background
	SweepScheduler *sweep.Scheduler
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
		"cutoff_hour", cfg.LatenessCutoffHour,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

// RepositoryBundle holds all repository implementations
type RepositoryBundle struct {
	JobRepo      contracts.JobRepository
	OrderRepo    contracts.JobOrderRepository
	CustomerRepo contracts.CustomerRepository
	WorkerRepo   contracts.WorkerRepository
	PaymentRepo  contracts.PaymentRepository
	EventLogRepo contracts.EventLogRepository
}

// buildRepositories creates all repository implementations with read/write
// database separation
func buildRepositories(db *database.Database) *RepositoryBundle {
	return &RepositoryBundle{
		JobRepo:      repositories.NewSqliteJobRepository(db),
		OrderRepo:    repositories.NewSqliteOrderRepository(db),
		CustomerRepo: repositories.NewSqliteCustomerRepository(db),
		WorkerRepo:   repositories.NewSqliteWorkerRepository(db),
		PaymentRepo:  repositories.NewSqlitePaymentRepository(db),
		EventLogRepo: repositories.NewSqliteEventLogRepository(db),
	}
}

// buildApplicationServices creates application services with dependency injection.
func buildApplicationServices(cfg *config.AppConfig, repos *RepositoryBundle) *ApplicationServices {
	// Create event bus for lifecycle events
	eventBus := events.NewLifecycleEventBus()

	clock := lifecycle.SystemClock{}
	loc := cfg.Location()
	resolver := lifecycle.NewStatusResolver(cfg.LatenessCutoffHour, loc)
	validator := lifecycle.NewTransitionValidator(clock)

	notifier := application.NewLifecycleNotifier(repos.EventLogRepo, eventBus)
	lifecycleService := application.NewLifecycleService(repos.JobRepo, resolver, notifier, clock)

	jobService := application.NewJobService(
		repos.JobRepo,
		repos.OrderRepo,
		repos.EventLogRepo,
		validator,
		lifecycleService,
		notifier,
		clock,
	)
	orderService := application.NewOrderService(repos.CustomerRepo, repos.OrderRepo, repos.JobRepo, clock)
	agendaService := application.NewAgendaService(repos.JobRepo, repos.WorkerRepo, lifecycleService, loc)
	reportService := application.NewReportService(repos.PaymentRepo, repos.JobRepo, repos.OrderRepo, clock, loc)

	return &ApplicationServices{
		JobService:       jobService,
		OrderService:     orderService,
		AgendaService:    agendaService,
		ReportService:    reportService,
		LifecycleService: lifecycleService,
		EventBus:         eventBus,
	}
}

// buildPresentationLayer creates all presenters and handlers
func buildPresentationLayer(services *ApplicationServices, repos *RepositoryBundle) *PresentationLayer {
	// Build presenters (view logic)
	jobPresenter := presenters.NewJobPresenter()
	fieldworkPresenter := presenters.NewFieldworkPresenter()
	agendaPresenter := presenters.NewAgendaPresenter(jobPresenter, fieldworkPresenter)
	reportPresenter := presenters.NewReportPresenter()

	// Build handlers - orchestrate services & presenters
	jobHandlers := handlers.NewJobHandlers(services.JobService, jobPresenter)
	orderHandlers := handlers.NewOrderHandlers(services.OrderService, fieldworkPresenter)
	agendaHandlers := handlers.NewAgendaHandlers(services.AgendaService, agendaPresenter)
	reportHandlers := handlers.NewReportHandlers(services.ReportService, reportPresenter)
	workerHandlers := handlers.NewWorkerHandlers(repos.WorkerRepo, fieldworkPresenter)

	// Setup event system for lifecycle notifications
	setupEventHandlers(services)

	return &PresentationLayer{
		JobPresenter:       jobPresenter,
		FieldworkPresenter: fieldworkPresenter,
		AgendaPresenter:    agendaPresenter,
		ReportPresenter:    reportPresenter,
		JobHandlers:        jobHandlers,
		OrderHandlers:      orderHandlers,
		AgendaHandlers:     agendaHandlers,
		ReportHandlers:     reportHandlers,
		WorkerHandlers:     workerHandlers,
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(db *database.Database, cfg *config.AppConfig, logger *logging.Logger) *Dependencies {
	repos := buildRepositories(db)
	services := buildApplicationServices(cfg, repos)
	presentation := buildPresentationLayer(services, repos)
	scheduler := sweep.NewScheduler(services.LifecycleService, cfg.SweepSchedule)

	return &Dependencies{
		DB:             db,
		Logger:         logger,
		Services:       services,
		Presentation:   presentation,
		SweepScheduler: scheduler,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Main application routes
	setupApplicationRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("fieldops", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func setupApplicationRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	// Customers
	r.Post("/customers", p.OrderHandlers.CreateCustomer)
	r.Get("/customers", p.OrderHandlers.ListCustomers)
	r.Get("/customers/{customerID}", p.OrderHandlers.GetCustomer)
	r.Get("/customers/{customerID}/orders", p.OrderHandlers.ListCustomerOrders)

	// Orders
	r.Post("/orders", p.OrderHandlers.CreateOrder)
	r.Get("/orders", p.OrderHandlers.ListOrders)
	r.Get("/orders/{orderID}", p.OrderHandlers.GetOrder)
	r.Put("/orders/{orderID}/notes", p.OrderHandlers.UpdateOrderNotes)
	r.Delete("/orders/{orderID}", p.OrderHandlers.DeleteOrder)
	r.Get("/orders/{orderID}/jobs", p.JobHandlers.ListOrderJobs)
	r.Get("/orders/{orderID}/report", p.ReportHandlers.OrderReport)

	// Jobs and lifecycle transitions
	r.Post("/jobs", p.JobHandlers.CreateJob)
	r.Get("/jobs/{jobID}", p.JobHandlers.GetJob)
	r.Delete("/jobs/{jobID}", p.JobHandlers.DeleteJob)
	r.Get("/jobs/{jobID}/events", p.JobHandlers.GetJobEvents)
	r.Post("/jobs/{jobID}/transition", p.JobHandlers.Transition)

	// Payments
	r.Post("/jobs/{jobID}/payments", p.ReportHandlers.AddPayment)
	r.Get("/jobs/{jobID}/payments", p.ReportHandlers.JobPayments)

	// Agenda and reports
	r.Get("/agenda", p.AgendaHandlers.Week)
	r.Get("/reports/weekly", p.ReportHandlers.WeeklyReport)

	// Workers
	r.Post("/workers", p.WorkerHandlers.CreateWorker)
	r.Get("/workers", p.WorkerHandlers.ListWorkers)
	r.Get("/workers/{workerID}", p.WorkerHandlers.GetWorker)
	r.Get("/workers/{workerID}/jobs", p.JobHandlers.ListWorkerJobs)
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, deps *Dependencies) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		// Stop the background sweep before the listener closes
		deps.SweepScheduler.Stop(shutdownCtx)

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}

// setupEventHandlers wires up the event handlers for lifecycle notifications
func setupEventHandlers(services *ApplicationServices) {
	notificationHandlers := events.NewNotificationEventHandlers()
	notificationHandlers.RegisterHandlers(services.EventBus)
}
