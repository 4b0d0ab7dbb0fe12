// Package server is the composition root: it opens the stores, builds every
// service and handler, and mounts them on one chi router.
//
// DEPENDENCY FLOW:
//
//	config.Config
//	  → sqlite.DB (users, commits, repo links, chat, resources; projects and tasks too
//	    unless store=local)
//	  → localfile.Store (projects and tasks when store=local)
//	  → github.Client
//	  → services → handlers → routes
//
// Handlers only see services, and services only see repository interfaces,
// so swapping the project store is a decision made here and nowhere else.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/collabspace/internal/auth"
	"github.com/sakif/collabspace/internal/config"
	"github.com/sakif/collabspace/internal/github"
	"github.com/sakif/collabspace/internal/handler"
	"github.com/sakif/collabspace/internal/middleware"
	"github.com/sakif/collabspace/internal/repository"
	"github.com/sakif/collabspace/internal/repository/localfile"
	sqliteRepo "github.com/sakif/collabspace/internal/repository/sqlite"
	"github.com/sakif/collabspace/internal/service"
)

const shutdownTimeout = 30 * time.Second

// Server owns the database connection and the router. The connection is
// closed when Start returns.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// boardStore is what projects and tasks are kept in.
type boardStore interface {
	repository.ProjectRepository
	repository.TaskRepository
}

// New opens the database and wires every route. cfg must already have
// passed Validate.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) board() boardStore {
	if s.cfg.Store == config.StoreLocal {
		s.logger.Info("projects and tasks kept in local file", slog.String("path", s.cfg.LocalPath))
		return localfile.New(s.cfg.LocalPath)
	}
	return s.db
}

// setupRoutes installs middleware and the /api tree.
//
// Middleware runs in the order added: RequestID first so the logger can
// tag its line, Recoverer last so a panicking handler is still logged as a
// 500.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	gh, err := github.New(github.Config{
		Token:       s.cfg.GitHubToken,
		BaseURL:     s.cfg.GitHubAPIURL,
		DetailLimit: s.cfg.DetailLimit,
	}, s.logger)
	if err != nil {
		return fmt.Errorf("creating github client: %w", err)
	}
	board := s.board()

	authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
	projectService := service.NewProjectService(board, s.logger)
	taskService := service.NewTaskService(board, board, s.logger)
	githubService := service.NewGitHubService(s.db, s.db, gh, s.cfg.SyncLimit, s.logger)
	transcriptService := service.NewTranscriptService(s.db, board, s.db, s.logger)
	chatService := service.NewChatService(s.db, s.logger)
	resourceService := service.NewResourceService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, tokens, s.cfg.SecureCookie, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, taskService, s.logger)
	githubHandler := handler.NewGitHubHandler(githubService, s.logger)
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)
	resourceHandler := handler.NewResourceHandler(resourceService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.cfg.Store, s.logger)
	seedHandler := handler.NewSeedHandler(service.NewSeeder(board, board, s.logger), s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)
		r.Post("/seed", seedHandler.HandleSeed)

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/users", authHandler.HandleListUsers)

		r.Get("/projects", projectHandler.HandleList)
		r.Get("/projects/{id}", projectHandler.HandleGet)
		r.Patch("/projects/{id}", projectHandler.HandleUpdate)
		r.Delete("/projects/{id}", projectHandler.HandleDelete)
		r.Get("/projects/{id}/tasks", projectHandler.HandleListTasks)
		r.Patch("/tasks/{id}", projectHandler.HandleUpdateTask)

		r.Post("/github/connect", githubHandler.HandleConnect)
		r.Get("/github/repo", githubHandler.HandleGetRepo)
		r.Get("/github/commits", githubHandler.HandleListCommits)
		r.Post("/github/commits", githubHandler.HandleSync)
		r.Get("/github/stats", githubHandler.HandleStats)

		r.Get("/chat", chatHandler.HandleList)
		r.Post("/chat", chatHandler.HandlePost)

		r.Get("/resources", resourceHandler.HandleList)

		r.With(auth.OptionalAuth(tokens)).Get("/transcript", transcriptHandler.HandleGet)

		// Session required.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Get("/users/search", authHandler.HandleSearchUsers)
			r.Post("/projects", projectHandler.HandleCreate)
			r.Post("/projects/{id}/tasks", projectHandler.HandleCreateTask)
			r.Post("/resources", resourceHandler.HandleCreate)
		})
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for up
// to shutdownTimeout before closing the database.
func (s *Server) Start() error {
	defer s.Close()

	// WriteTimeout covers a GitHub sync, which makes up to detail_limit+1
	// upstream calls.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.cfg.Port)),
			slog.String("database", s.cfg.DBPath),
			slog.String("store", s.cfg.Store),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
