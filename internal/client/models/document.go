package models

// Document is a server-confirmed ingested document.
type Document struct {
	ID         string
	Name       string
	IngestedAt string
	Difficulty string
	Version    int
}

// DocumentChunk is one indexed chunk of a document.
type DocumentChunk struct {
	ID         string
	Text       string
	ChunkIndex int
}

// DocumentDetail is the full view of a single document.
type DocumentDetail struct {
	ID         string
	Name       string
	ChunkCount int
	IngestedAt string
	Summary    string
	Difficulty string
	Version    int
	Chunks     []DocumentChunk
}

// SearchHit is one semantic-search result.
type SearchHit struct {
	Source string
	Text   string
	Score  float64
}

// SearchResult bundles the retrieved hits with the generated answer the
// search endpoint returns alongside them.
type SearchResult struct {
	Answer string
	Hits   []SearchHit
}

// IngestResult reports the outcome of a file or Wikipedia ingest.
//
// Duplicate is set when the backend detected a same-content document and the
// upload was not forced; the caller may retry with force to override.
type IngestResult struct {
	DocumentID  string
	Version     int
	Difficulty  string
	ChunksAdded int
	Duplicate   bool
	Message     string
}
