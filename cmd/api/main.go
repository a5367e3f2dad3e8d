package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dvloznov/wealthmind/internal/advisor"
	"github.com/dvloznov/wealthmind/internal/api/handlers"
	"github.com/dvloznov/wealthmind/internal/api/middleware"
	"github.com/dvloznov/wealthmind/internal/config"
	"github.com/dvloznov/wealthmind/internal/extract"
	"github.com/dvloznov/wealthmind/internal/jobs"
	"github.com/dvloznov/wealthmind/internal/jobs/inmemory"
	"github.com/dvloznov/wealthmind/internal/logger"
	"github.com/dvloznov/wealthmind/internal/review"
	"github.com/dvloznov/wealthmind/internal/store"
)

func main() {
	// Load .env if present; real environment takes precedence
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := logger.WithContext(context.Background(), log)

	// Load persisted state
	fileStore := store.NewFileStore(cfg.App.DataFile)
	state, err := handlers.NewState(ctx, fileStore)
	if err != nil {
		log.Fatal().Err(err).Str("data_file", cfg.App.DataFile).Msg("Failed to load data file")
	}

	// Review sessions and extraction pipeline
	sessions := review.NewSessions()
	extractor := extract.New(extract.NewGeminiGenerator(cfg.AI.Model))

	// Job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.ExtractTextJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("session_id", job.SessionID).
			Msg("Processing extraction job")

		candidates, err := extractor.Extract(ctx, job.RawText)
		sessions.Finish(job.SessionID, candidates, err)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Str("session_id", job.SessionID).
				Msg("Extraction failed")
			return err
		}

		log.Info().
			Str("job_id", job.JobID).
			Str("session_id", job.SessionID).
			Int("candidates", len(candidates)).
			Msg("Extraction completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting extraction worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Extraction worker stopped with error")
		}
	}()

	// Initialize handlers
	adviser := advisor.New(cfg.AI.Model, cfg.AI.CacheTTL)
	transactionsHandler := handlers.NewTransactionsHandler(state, log)
	categoriesHandler := handlers.NewCategoriesHandler(log)
	importHandler := handlers.NewImportHandler(state, sessions, jobQueue, log)
	planningHandler := handlers.NewPlanningHandler(state, log)
	advisorHandler := handlers.NewAdvisorHandler(state, adviser, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		if r.Method == http.MethodDelete {
			transactionsHandler.DeleteTransaction(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			categoriesHandler.ListCategories(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.Summary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/import", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			importHandler.StartImport(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/import/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/import/")
		if rest == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Session ID is required")
			return
		}

		// Candidate edits: {sessionID}/candidates/{index}
		if sessionID, index, ok := handlers.ParseCandidatePath(rest); ok {
			switch r.Method {
			case http.MethodPatch:
				importHandler.UpdateCandidate(w, r, sessionID, index)
			case http.MethodDelete:
				importHandler.RemoveCandidate(w, r, sessionID, index)
			default:
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}

		// Commit: {sessionID}/commit
		if sessionID, found := strings.CutSuffix(rest, "/commit"); found {
			if r.Method == http.MethodPost {
				importHandler.CommitSession(w, r, sessionID)
			} else {
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			importHandler.GetSession(w, r, rest)
		case http.MethodDelete:
			importHandler.CancelSession(w, r, rest)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			planningHandler.ListBudgets(w, r)
		case http.MethodPut:
			planningHandler.SetBudget(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/budgets/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		planningHandler.BudgetStatus(w, r)
	})

	mux.HandleFunc("/api/monthly", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			planningHandler.GetMonthly(w, r)
		case http.MethodPut:
			planningHandler.PutMonthly(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			planningHandler.ListGoals(w, r)
		case http.MethodPost:
			planningHandler.CreateGoal(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals/", func(w http.ResponseWriter, r *http.Request) {
		goalID := strings.TrimPrefix(r.URL.Path, "/api/goals/")
		if goalID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Goal ID is required")
			return
		}
		switch r.Method {
		case http.MethodPut:
			planningHandler.AddGoalFunds(w, r, goalID)
		case http.MethodDelete:
			planningHandler.DeleteGoal(w, r, goalID)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			planningHandler.GetSettings(w, r)
		case http.MethodPut:
			planningHandler.PutSettings(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/advice", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			advisorHandler.GetAdvice(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/plan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			advisorHandler.CreatePlan(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/education", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			advisorHandler.GetEducation(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/news", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			advisorHandler.GetNews(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Int("port", cfg.App.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Server exited")
}
