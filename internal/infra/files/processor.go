// File: internal/infra/files/processor.go
package files

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ledongthuc/pdf"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/model"
)

// MaxFileSize bounds accepted attachments.
const MaxFileSize = 50 * 1024 * 1024

var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// Processor turns raw attachment bytes into a typed extraction result. It is a
// pure function of its inputs; all failures surface as typed errors, never
// panics.
type Processor struct{}

func NewProcessor() *Processor { return &Processor{} }

func (p *Processor) Extract(filename string, data []byte) (*model.Extraction, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: maximum size is %dMB", domain.ErrFileTooLarge, MaxFileSize/(1024*1024))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageMimeTypes[ext] != "":
		return p.extractImage(data, ext)
	case ext == ".pdf":
		return p.extractPDF(data)
	case ext == ".txt":
		return p.extractText(data)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}
}

func (p *Processor) extractImage(data []byte, ext string) (*model.Extraction, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image: %v", domain.ErrUnsupportedFileType, err)
	}
	return &model.Extraction{
		Kind:       model.ExtractionImage,
		Format:     format,
		Base64Data: base64.StdEncoding.EncodeToString(data),
		MimeType:   imageMimeTypes[ext],
		Width:      cfg.Width,
		Height:     cfg.Height,
	}, nil
}

func (p *Processor) extractPDF(data []byte) (*model.Extraction, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable pdf: %v", domain.ErrUnsupportedFileType, err)
	}

	pages := reader.NumPage()
	var sections []string
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			sections = append(sections, fmt.Sprintf("--- Page %d ---\n[text extraction failed]", i))
			continue
		}
		if strings.TrimSpace(text) != "" {
			sections = append(sections, fmt.Sprintf("--- Page %d ---\n%s", i, text))
		}
	}

	full := strings.Join(sections, "\n\n")
	return &model.Extraction{
		Kind:      model.ExtractionDocument,
		Format:    "pdf",
		Text:      full,
		Pages:     pages,
		WordCount: len(strings.Fields(full)),
	}, nil
}

func (p *Processor) extractText(data []byte) (*model.Extraction, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		// Latin-1 fallback: every byte maps to a rune.
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		text = string(runes)
	}
	return &model.Extraction{
		Kind:      model.ExtractionDocument,
		Format:    "text",
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}, nil
}
