// Package server wires the application together: it opens the database,
// builds the repository/service/handler chain, mounts the routes, and runs
// the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kfodor/askmate/internal/handler"
	"github.com/kfodor/askmate/internal/middleware"
	sqliteRepo "github.com/kfodor/askmate/internal/repository/sqlite"
	"github.com/kfodor/askmate/internal/service"
)

// Config holds everything main reads from the environment.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string
}

// Server owns the router and the database connection; the connection is
// process-wide, opened once here and closed on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the store and assembles the dependency chain:
// sqlite repos → services → handlers → routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	questionRepo := sqliteRepo.NewQuestionRepo(s.db)
	answerRepo := sqliteRepo.NewAnswerRepo(s.db)
	commentRepo := sqliteRepo.NewCommentRepo(s.db)
	tagRepo := sqliteRepo.NewTagRepo(s.db)

	questions := service.NewQuestionService(questionRepo, s.logger)
	answers := service.NewAnswerService(answerRepo, questionRepo, s.logger)
	comments := service.NewCommentService(commentRepo, questionRepo, answerRepo, s.logger)
	tags := service.NewTagService(tagRepo, questionRepo, s.logger)
	votes := service.NewVoteService(questionRepo, answerRepo, s.logger)
	searcher := service.NewSearchService(questionRepo, s.logger)

	questionHandler, err := handler.NewQuestionHandler(
		questions, answers, comments, tags, votes, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating question handler: %w", err)
	}
	answerHandler, err := handler.NewAnswerHandler(answers, questions, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating answer handler: %w", err)
	}
	commentHandler, err := handler.NewCommentHandler(comments, answers, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating comment handler: %w", err)
	}
	tagHandler := handler.NewTagHandler(tags, s.logger)
	searchHandler, err := handler.NewSearchHandler(searcher, s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating search handler: %w", err)
	}

	s.router.Get("/", questionHandler.HandleList)
	s.router.Get("/list", questionHandler.HandleList)
	s.router.Get("/search", searchHandler.HandleSearch)

	s.router.Get("/add-question", questionHandler.HandleAddForm)
	s.router.Post("/add-question", questionHandler.HandleAdd)

	s.router.Route("/question/{id}", func(r chi.Router) {
		// The detail page answers POST as well: the post-vote 307 redirect
		// re-issues the request as POST so it skips the view increment.
		r.Get("/", questionHandler.HandleDetail)
		r.Post("/", questionHandler.HandleDetail)
		r.Get("/edit", questionHandler.HandleEditForm)
		r.Post("/edit", questionHandler.HandleEdit)
		r.Post("/delete", questionHandler.HandleDelete)
		r.Post("/vote", questionHandler.HandleVote)

		r.Get("/new-answer", answerHandler.HandleNewForm)
		r.Post("/new-answer", answerHandler.HandleCreate)
		r.Post("/answer/{answerID}/delete", answerHandler.HandleDelete)

		r.Post("/new-comment", commentHandler.HandleNewQuestionComment)

		r.Post("/new-tag", tagHandler.HandleAdd)
		r.Post("/tag/{tagID}/delete", tagHandler.HandleRemove)
	})

	s.router.Route("/answer/{id}", func(r chi.Router) {
		r.Get("/edit", answerHandler.HandleEditForm)
		r.Post("/edit", answerHandler.HandleEdit)
		r.Post("/new-comment", commentHandler.HandleNewAnswerComment)
	})

	s.router.Route("/comment/{id}", func(r chi.Router) {
		r.Get("/edit", commentHandler.HandleEditForm)
		r.Post("/edit", commentHandler.HandleEdit)
		r.Post("/delete", commentHandler.HandleDelete)
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
