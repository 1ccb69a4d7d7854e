package server

import (
	"context"
	"log"
	"log/slog"

	"docqa/app/api"
	"docqa/model"
	"docqa/store"
	"docqa/types"

	"github.com/gofiber/fiber/v2"
)

type Server struct {
	cfg    types.Config
	logger *slog.Logger
	app    *fiber.App
	store  *store.PostgresStore
}

func NewServer(cfg types.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func (s *Server) Stop() {
	if s.app != nil {
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error("error shutting down fiber app", "error", err.Error())
		}
	}
	if s.store != nil {
		s.store.Close()
	}
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()

	pool, err := store.NewPostgresStore(ctx, s.cfg.ConnString(), s.cfg.EmbeddingDim)
	if err != nil {
		log.Fatal("error to connect to Postgres database: ", err)
	}
	s.store = pool

	if err := pool.EnsureKeyspace(ctx); err != nil {
		log.Fatal("error to create keyspace: ", err)
	}

	openai := model.NewOpenAIClient(s.cfg)
	s.app = NewApp(pool, openai, openai, s.cfg)

	if err := s.app.Listen(s.cfg.ListenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
	}
}

// NewApp wires the handlers onto a fiber app. Shared clients come in from the
// caller so tests can substitute them.
func NewApp(storer store.VectorStorer, embedder model.Embedder, llm model.Completer, cfg types.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
	})

	var (
		checkHandler    = api.NewCheckHandler()
		uploadHandler   = api.NewUploadHandler(storer, embedder, cfg)
		queryHandler    = api.NewQueryHandler(storer, embedder, llm, cfg)
		documentHandler = api.NewDocumentHandler(storer)
		check           = app.Group("/check")
		apiv1           = app.Group("/api/v1")
	)

	app.Post("/upload", uploadHandler.HandleUpload)
	app.Post("/query", queryHandler.HandleQuery)
	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Get("/documents", documentHandler.HandleList)
	apiv1.Delete("/documents/:id", documentHandler.HandleDelete)

	return app
}
