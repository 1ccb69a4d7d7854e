package api

import (
	"io"
	"strings"
	"time"

	"docqa/ingest"
	"docqa/model"
	"docqa/store"
	"docqa/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadHandler struct {
	store    store.VectorStorer
	embedder model.Embedder
	splitter *ingest.Splitter
	cfg      types.Config
}

func NewUploadHandler(s store.VectorStorer, embedder model.Embedder, cfg types.Config) *UploadHandler {
	return &UploadHandler{
		store:    s,
		embedder: embedder,
		splitter: ingest.NewSplitter(cfg),
		cfg:      cfg,
	}
}

// HandleUpload runs the full ingestion pipeline synchronously:
// extract text, chunk, embed and store into the tenant's collection.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		return ErrMissingTenantID()
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrBadRequest()
	}

	// filename suffix check only, as the upload contract specifies
	if !strings.HasSuffix(fileHeader.Filename, ".pdf") {
		return ErrNotPDF()
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	ctx := c.UserContext()

	text, err := ingest.ExtractText(data)
	if err != nil {
		return err
	}

	chunks := ingest.CapChunks(h.splitter.Split(text), h.cfg.MaxChunksPerDoc)

	col, err := h.store.OpenTenantCollection(ctx, tenantID)
	if err != nil {
		return err
	}

	docID := uuid.New()
	if len(chunks) > 0 {
		vectors, err := h.embedder.EmbedBatch(ctx, chunks)
		if err != nil {
			return err
		}
		if err := h.store.Ingest(ctx, col, docID, chunks, vectors); err != nil {
			return err
		}
	}

	doc := types.Document{
		ID:         docID,
		TenantID:   tenantID,
		Title:      strings.TrimSuffix(fileHeader.Filename, ".pdf"),
		ChunkCount: len(chunks),
		CreatedAt:  time.Now(),
	}
	if err := h.store.SaveDocument(ctx, doc); err != nil {
		return err
	}

	return c.JSON(types.UploadResponse{Message: "PDF processed successfully"})
}
