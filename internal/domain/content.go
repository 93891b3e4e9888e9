package domain

import "fmt"

// KeyPrefix namespaces every key linkvault writes to the store.
const KeyPrefix = "lv:"

// ContentType classifies a saved link.
type ContentType string

const (
	// TypeImage is an image link.
	TypeImage ContentType = "image"
	// TypeVideo is a video link.
	TypeVideo ContentType = "video"
	// TypePDF is a PDF document link.
	TypePDF ContentType = "pdf"
	// TypeArticle is an article link.
	TypeArticle ContentType = "article"
	// TypeAudio is an audio link.
	TypeAudio ContentType = "audio"
)

// ParseContentType validates and converts a string into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case TypeImage, TypeVideo, TypePDF, TypeArticle, TypeAudio:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown content type %q", ErrInvalidContentType, s)
	}
}

// String returns the string form of the content type.
func (t ContentType) String() string { return string(t) }

// ContentRecord is a saved link with its metadata and semantic vector.
// Embedding is attached best-effort at creation time: a provider failure
// leaves it empty, it is never regenerated on later tag edits.
type ContentRecord struct {
	ID          string
	Title       string
	Type        ContentType
	Link        string
	OwnerID     string
	PreviewHTML string
	TagIDs      []string
	Embedding   []float32
}

// Tag is a shared label, deduplicated by title across all content.
type Tag struct {
	ID         string
	Title      string
	ContentIDs []string
}

// ContentView is a ContentRecord with tag ids resolved to titles,
// as returned by listing endpoints.
type ContentView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	Link        string      `json:"link"`
	PreviewHTML string      `json:"previewHtml,omitempty"`
	Tags        []string    `json:"tags"`
}

// ScoredResult is a single semantic search hit. Computed per query,
// never persisted.
type ScoredResult struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	Link        string      `json:"link"`
	PreviewHTML string      `json:"previewHtml,omitempty"`
	Tags        []string    `json:"tags"`
	Score       float64     `json:"score"`
}
