package types

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	ID        uuid.UUID
	DocID     uuid.UUID
	Position  int
	Content   string
	Embedding []float32
	Distance  float64
}

type Document struct {
	ID         uuid.UUID
	TenantID   string
	Title      string
	ChunkCount int
	CreatedAt  time.Time
}
