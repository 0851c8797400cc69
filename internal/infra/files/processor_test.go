package files

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	p := NewProcessor()

	ex, err := p.Extract("notes.txt", []byte("hello world from the test"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Kind != model.ExtractionDocument || ex.Format != "text" {
		t.Fatalf("extraction = %+v", ex)
	}
	if ex.Text != "hello world from the test" {
		t.Fatalf("Text = %q", ex.Text)
	}
	if ex.WordCount != 5 {
		t.Fatalf("WordCount = %d, want 5", ex.WordCount)
	}
}

func TestExtractTextNonUTF8(t *testing.T) {
	p := NewProcessor()

	// Latin-1 encoded "café".
	ex, err := p.Extract("notes.txt", []byte{'c', 'a', 'f', 0xe9})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Text != "café" {
		t.Fatalf("Text = %q, want café", ex.Text)
	}
}

func TestExtractImage(t *testing.T) {
	p := NewProcessor()
	data := pngBytes(t, 3, 2)

	ex, err := p.Extract("pic.png", data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Kind != model.ExtractionImage || ex.Format != "png" || ex.MimeType != "image/png" {
		t.Fatalf("extraction = %+v", ex)
	}
	if ex.Width != 3 || ex.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", ex.Width, ex.Height)
	}
	decoded, err := base64.StdEncoding.DecodeString(ex.Base64Data)
	if err != nil || !bytes.Equal(decoded, data) {
		t.Fatal("Base64Data does not round trip the original bytes")
	}
}

func TestExtractImageGarbage(t *testing.T) {
	p := NewProcessor()

	if _, err := p.Extract("pic.png", []byte("not an image at all")); !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	p := NewProcessor()

	_, err := p.Extract("archive.zip", []byte("PK"))
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if !strings.Contains(err.Error(), ".zip") {
		t.Fatalf("error should name the extension: %v", err)
	}
}

func TestExtractTooLarge(t *testing.T) {
	p := NewProcessor()

	_, err := p.Extract("big.txt", make([]byte, MaxFileSize+1))
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	img := &model.Extraction{Kind: model.ExtractionImage, Format: "png", Width: 3, Height: 2}
	if s := img.Summary("pic.png"); !strings.Contains(s, "pic.png") || !strings.Contains(s, "3x2") {
		t.Fatalf("image summary = %q", s)
	}
	doc := &model.Extraction{Kind: model.ExtractionDocument, Format: "pdf", Pages: 4, WordCount: 120}
	if s := doc.Summary("report.pdf"); !strings.Contains(s, "report.pdf") {
		t.Fatalf("document summary = %q", s)
	}
}
