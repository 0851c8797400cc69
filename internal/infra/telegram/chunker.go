// File: internal/infra/telegram/chunker.go
package telegram

import "strings"

const (
	// maxChunkLen leaves headroom under Telegram's 4096 limit and matches the
	// bot's fixed response bound.
	maxChunkLen = 1900
	// paragraphChunkLen is the accumulation bound when stitching paragraphs.
	paragraphChunkLen = 1800
)

// SplitResponse chunks a reply at paragraph boundaries. The first chunk
// carries the model/mode label; subsequent chunks are unprefixed. No chunk
// exceeds maxChunkLen.
func SplitResponse(label, text string) []string {
	prefix := ""
	if label != "" {
		prefix = "🤖 " + label + ": "
	}

	if len(prefix)+len(text) <= maxChunkLen {
		return []string{prefix + text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		// Hard-split paragraphs that alone exceed the bound.
		for len(para) > paragraphChunkLen {
			flush()
			chunks = append(chunks, para[:paragraphChunkLen])
			para = para[paragraphChunkLen:]
		}
		if current.Len()+len(para) >= paragraphChunkLen {
			flush()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	flush()

	if len(chunks) > 0 && prefix != "" {
		chunks[0] = prefix + chunks[0]
	}
	return chunks
}
