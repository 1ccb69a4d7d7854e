package store

import (
	"context"
	"fmt"
	"log/slog"

	"docqa/tenant"
	"docqa/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Keyspace is the shared top-level namespace holding one collection per tenant.
const Keyspace = "shared_keyspace"

type VectorStorer interface {
	EnsureKeyspace(context.Context) error
	OpenTenantCollection(context.Context, string) (Collection, error)
	Ingest(context.Context, Collection, uuid.UUID, []string, [][]float32) error
	Search(context.Context, Collection, []float32, int) ([]types.Chunk, error)
	SaveDocument(context.Context, types.Document) error
	ListDocuments(context.Context, string) ([]types.Document, error)
	DeleteDocument(context.Context, string, uuid.UUID) error
}

// Collection is a handle bound to one tenant's table inside the shared keyspace.
type Collection struct {
	TenantID string
	table    string // sanitized, schema-qualified identifier
}

type PostgresStore struct {
	pool *pgxpool.Pool
	dim  int
}

func NewPostgresStore(ctx context.Context, connStr string, embeddingDim int) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
		dim:  embeddingDim,
	}, nil
}

// EnsureKeyspace idempotently creates the shared schema, the vector extension
// and the document metadata table. Safe to call repeatedly and concurrently.
func (p *PostgresStore) EnsureKeyspace(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE SCHEMA IF NOT EXISTS %s;

	CREATE TABLE IF NOT EXISTS %s.documents (
		id UUID PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		title TEXT NOT NULL,
		chunk_count INT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_tenant_id ON %s.documents(tenant_id);
	`, Keyspace, Keyspace, Keyspace)

	_, err := p.pool.Exec(ctx, query)
	return err
}

// OpenTenantCollection binds to the tenant's collection, creating it on first
// use. The table name is derived deterministically from the sanitized tenant id.
func (p *PostgresStore) OpenTenantCollection(ctx context.Context, tenantID string) (Collection, error) {
	name := tenant.CollectionName(tenantID)
	table := pgx.Identifier{Keyspace, name}.Sanitize()

	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s (
        row_id UUID PRIMARY KEY,
        doc_id UUID NOT NULL,
        position INT NOT NULL,
        body_blob TEXT NOT NULL,
        embedding vector(%d)
    );

	CREATE INDEX IF NOT EXISTS %s ON %s USING ivfflat (embedding vector_cosine_ops)
	WITH (lists = 100);

	CREATE INDEX IF NOT EXISTS %s ON %s (doc_id);
    `,
		table, p.dim,
		pgx.Identifier{"idx_" + name + "_embedding"}.Sanitize(), table,
		pgx.Identifier{"idx_" + name + "_doc_id"}.Sanitize(), table,
	)

	if _, err := p.pool.Exec(ctx, query); err != nil {
		return Collection{}, fmt.Errorf("failed to open collection for tenant %q: %w", tenantID, err)
	}

	return Collection{TenantID: tenantID, table: table}, nil
}

// Ingest persists (chunk text, vector) pairs into the collection. There is no
// deduplication against prior uploads; repeated content accumulates.
func (p *PostgresStore) Ingest(ctx context.Context, col Collection, docID uuid.UUID, chunks []string, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	query := fmt.Sprintf(`
    INSERT INTO %s (row_id, doc_id, position, body_blob, embedding)
    VALUES ($1, $2, $3, $4, $5)
    `, col.table)

	for i, chunk := range chunks {
		_, err := p.pool.Exec(ctx, query,
			uuid.New(), docID, i, chunk, pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("failed to save chunk %d: %w", i, err)
		}
	}
	return nil
}

// Search returns the top-k chunks nearest to the query vector by cosine
// distance, most similar first.
func (p *PostgresStore) Search(ctx context.Context, col Collection, queryVec []float32, limit int) ([]types.Chunk, error) {
	if len(queryVec) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	vector := pgvector.NewVector(queryVec)

	query := fmt.Sprintf(`
		SELECT row_id, doc_id, position, body_blob,
		       embedding <=> $1 AS distance
		FROM %s
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2
	`, col.table)

	rows, err := p.pool.Query(ctx, query, vector, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []types.Chunk
	for rows.Next() {
		var chunk types.Chunk
		if err := rows.Scan(
			&chunk.ID,
			&chunk.DocID,
			&chunk.Position,
			&chunk.Content,
			&chunk.Distance,
		); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func (p *PostgresStore) SaveDocument(ctx context.Context, doc types.Document) error {
	query := fmt.Sprintf(`
	INSERT INTO %s.documents (id, tenant_id, title, chunk_count, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`, Keyspace)

	_, err := p.pool.Exec(ctx, query,
		doc.ID, doc.TenantID, doc.Title, doc.ChunkCount, doc.CreatedAt,
	)
	return err
}

func (p *PostgresStore) ListDocuments(ctx context.Context, tenantID string) ([]types.Document, error) {
	query := fmt.Sprintf(`
	SELECT id, tenant_id, title, chunk_count, created_at
	FROM %s.documents
	WHERE tenant_id = $1
	ORDER BY created_at DESC
	`, Keyspace)

	rows, err := p.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var doc types.Document
		if err := rows.Scan(&doc.ID, &doc.TenantID, &doc.Title, &doc.ChunkCount, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document's metadata and all of its chunks from the
// tenant's collection.
func (p *PostgresStore) DeleteDocument(ctx context.Context, tenantID string, docID uuid.UUID) error {
	col, err := p.OpenTenantCollection(ctx, tenantID)
	if err != nil {
		return err
	}

	if _, err := p.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE doc_id = $1", col.table), docID); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}

	_, err = p.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s.documents WHERE id = $1 AND tenant_id = $2", Keyspace),
		docID, tenantID,
	)
	return err
}

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		slog.Info("postgres connection pool closed")
	}
	return nil
}
