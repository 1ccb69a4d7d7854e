package api

import (
	"time"

	"docqa/store"
	"docqa/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	store store.VectorStorer
}

func NewDocumentHandler(s store.VectorStorer) *DocumentHandler {
	return &DocumentHandler{
		store: s,
	}
}

func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		return ErrMissingTenantID()
	}

	docs, err := h.store.ListDocuments(c.UserContext(), tenantID)
	if err != nil {
		return err
	}

	infos := make([]types.DocumentInfo, len(docs))
	for i, doc := range docs {
		infos[i] = types.DocumentInfo{
			ID:         doc.ID.String(),
			Title:      doc.Title,
			ChunkCount: doc.ChunkCount,
			CreatedAt:  doc.CreatedAt.Format(time.RFC3339),
		}
	}
	return c.JSON(infos)
}

// HandleDelete removes a document and all of its chunks from the tenant's
// collection.
func (h *DocumentHandler) HandleDelete(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		return ErrMissingTenantID()
	}

	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrInvalidID()
	}

	if err := h.store.DeleteDocument(c.UserContext(), tenantID, docID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"result": "deleted"})
}
