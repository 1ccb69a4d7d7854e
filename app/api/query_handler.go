package api

import (
	"docqa/app/agent"
	"docqa/model"
	"docqa/store"
	"docqa/types"

	"github.com/gofiber/fiber/v2"
)

type QueryHandler struct {
	store    store.VectorStorer
	embedder model.Embedder
	llm      model.Completer
	cfg      types.Config
}

func NewQueryHandler(s store.VectorStorer, embedder model.Embedder, llm model.Completer, cfg types.Config) *QueryHandler {
	return &QueryHandler{
		store:    s,
		embedder: embedder,
		llm:      llm,
		cfg:      cfg,
	}
}

// HandleQuery embeds the question, retrieves the top-k similar chunks from the
// tenant's collection and synthesizes an answer. Any internal failure surfaces
// as a 500 with a detail message.
func (h *QueryHandler) HandleQuery(c *fiber.Ctx) error {
	var params types.QueryParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	ctx := c.UserContext()

	col, err := h.store.OpenTenantCollection(ctx, params.TenantID)
	if err != nil {
		return ErrQueryFailed(err)
	}

	queryVec, err := h.embedder.Embed(ctx, params.Question)
	if err != nil {
		return ErrQueryFailed(err)
	}

	chunks, err := h.store.Search(ctx, col, queryVec, h.cfg.TopK)
	if err != nil {
		return ErrQueryFailed(err)
	}

	answer, err := agent.GenerateAnswer(ctx, h.llm, params.Question, chunks)
	if err != nil {
		return ErrQueryFailed(err)
	}

	return c.JSON(types.QueryResponse{
		Answer:          answer,
		SourceDocuments: agent.Sources(chunks),
	})
}
