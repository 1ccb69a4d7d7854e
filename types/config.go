package types

import (
	"fmt"
	"os"
	"strconv"
)

// Config is built once at process start and injected into components.
// All provider credentials and database coordinates come from the environment.
type Config struct {
	ListenAddr string

	PGHost   string
	PGPort   int
	PGUser   string
	PGPass   string
	PGDBName string

	OpenAIKey     string
	OpenAIBaseURL string

	EmbeddingModel string
	EmbeddingDim   int
	LLMModel       string

	ChunkSize       int
	ChunkOverlap    int
	ChunkSeparator  string
	MaxChunksPerDoc int
	TopK            int
}

func ConfigFromEnv() Config {
	return Config{
		ListenAddr: getEnv("SERVER_ADDR", ":8000"),

		PGHost:   getEnv("PG_HOST", "localhost"),
		PGPort:   getEnvInt("PG_PORT", 5432),
		PGUser:   getEnv("PG_USER", "postgres"),
		PGPass:   getEnv("PG_PASS", "postgres"),
		PGDBName: getEnv("PG_DB_NAME", "docqa"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),
		EmbeddingDim:   getEnvInt("EMBEDDING_DIM", 1536),
		LLMModel:       getEnv("LLM_MODEL", "gpt-3.5-turbo"),

		ChunkSize:       getEnvInt("CHUNK_SIZE", 800),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 200),
		ChunkSeparator:  getEnv("CHUNK_SEPARATOR", "\n"),
		MaxChunksPerDoc: getEnvInt("MAX_CHUNKS_PER_DOC", 50),
		TopK:            getEnvInt("TOP_K", 3),
	}
}

// ConnString builds the Postgres DSN for the pgx pool.
func (c Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.PGHost, c.PGPort, c.PGUser, c.PGPass, c.PGDBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
