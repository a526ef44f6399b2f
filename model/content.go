package model

// ContentType categorises catalog entries. It only matters for reporting;
// the cache engine treats all content uniformly.
type ContentType string

const (
	ContentVideo       ContentType = "video"
	ContentImage       ContentType = "image"
	ContentDocument    ContentType = "document"
	ContentAudio       ContentType = "audio"
	ContentApplication ContentType = "application"
)

// ContentRef describes one item of deliverable content. ContentRefs are
// immutable and owned by the catalog; the cache engine only ever holds the ID.
type ContentRef struct {
	ID        string
	SizeBytes int64
	Type      ContentType

	// Popularity is a 0..1 score used by workload generators to weight
	// request frequency. The resolver itself never reads it.
	Popularity float64
}
