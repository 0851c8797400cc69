package model

import "fmt"

// ExtractionKind tags the shape of an extracted attachment.
type ExtractionKind string

const (
	ExtractionImage    ExtractionKind = "image"
	ExtractionDocument ExtractionKind = "document"
)

// Extraction is the typed result of running raw attachment bytes through the
// file-processing collaborator.
type Extraction struct {
	Kind   ExtractionKind
	Format string // jpeg|png|gif|webp|pdf|text

	// Image fields
	Base64Data string
	MimeType   string
	Width      int
	Height     int

	// Document fields
	Text      string
	Pages     int
	WordCount int
}

// Summary is the short confirmation line sent back to the uploader.
func (e *Extraction) Summary(filename string) string {
	switch e.Kind {
	case ExtractionImage:
		return fmt.Sprintf("Processed: %s • %s image %dx%d", filename, e.Format, e.Width, e.Height)
	default:
		if e.Pages > 0 {
			return fmt.Sprintf("Processed: %s • %d pages, %d words", filename, e.Pages, e.WordCount)
		}
		return fmt.Sprintf("Processed: %s • %d words", filename, e.WordCount)
	}
}
