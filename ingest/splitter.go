package ingest

import (
	"strings"

	"docqa/types"
)

// Splitter splits text on a separator and greedily reassembles the pieces into
// chunks not exceeding ChunkSize, carrying up to Overlap trailing characters of
// one chunk into the start of the next.
type Splitter struct {
	Separator string
	ChunkSize int
	Overlap   int
}

func NewSplitter(cfg types.Config) *Splitter {
	return &Splitter{
		Separator: cfg.ChunkSeparator,
		ChunkSize: cfg.ChunkSize,
		Overlap:   cfg.ChunkOverlap,
	}
}

// Split returns the ordered chunks of text. A single separator-delimited piece
// longer than ChunkSize is emitted as its own chunk; text is never dropped here.
func (s *Splitter) Split(text string) []string {
	pieces := strings.Split(text, s.Separator)

	var chunks []string
	var cur []string
	curLen := 0

	for _, piece := range pieces {
		if s.overflows(curLen, len(cur), len(piece)) && len(cur) > 0 {
			if chunk := joinPieces(cur, s.Separator); chunk != "" {
				chunks = append(chunks, chunk)
			}
			// drop leading pieces until the kept tail fits the overlap budget
			// and leaves room for the incoming piece
			for len(cur) > 0 && (curLen > s.Overlap || s.overflows(curLen, len(cur), len(piece))) {
				curLen -= len(cur[0])
				if len(cur) > 1 {
					curLen -= len(s.Separator)
				}
				cur = cur[1:]
			}
		}
		cur = append(cur, piece)
		curLen += len(piece)
		if len(cur) > 1 {
			curLen += len(s.Separator)
		}
	}

	if chunk := joinPieces(cur, s.Separator); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (s *Splitter) overflows(curLen, pieceCount, addLen int) bool {
	total := curLen + addLen
	if pieceCount > 0 {
		total += len(s.Separator)
	}
	return total > s.ChunkSize
}

func joinPieces(pieces []string, sep string) string {
	return strings.TrimSpace(strings.Join(pieces, sep))
}

// CapChunks limits how many chunks of a document get persisted.
func CapChunks(chunks []string, max int) []string {
	if max > 0 && len(chunks) > max {
		return chunks[:max]
	}
	return chunks
}
