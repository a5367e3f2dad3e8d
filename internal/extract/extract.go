// Package extract turns opaque free text (pasted SMS logs, bank alerts,
// natural language) into partial transaction candidates via a generative
// model. The model call is a single best-effort attempt; every failure mode
// is reported as an *ExtractionError so callers can log it, then collapse
// it to an empty candidate list at the presentation boundary.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxInputLen bounds the prefix of the raw text sent to the model, to keep
// request cost and latency bounded.
const MaxInputLen = 2000

// TextGenerator is the external inference collaborator: prompt in, raw
// generated text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ExtractionError wraps any failure between issuing the model call and
// decoding its output. It is never propagated past the extractor's callers;
// they degrade to an empty candidate list.
type ExtractionError struct {
	Stage string // "generate" or "decode"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract: %s: %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor derives transaction candidates from raw text.
type Extractor struct {
	gen TextGenerator
}

// New creates an Extractor backed by the given text generator.
func New(gen TextGenerator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract sends a bounded prefix of rawText to the model and decodes the
// response into candidates. On success the decoded candidates are returned
// as-is; field-level validation is a review/commit concern. On any failure
// it returns a nil slice and an *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, rawText string) ([]Candidate, error) {
	if len(rawText) > MaxInputLen {
		cut := MaxInputLen
		for cut > 0 && !utf8.RuneStart(rawText[cut]) {
			cut--
		}
		rawText = rawText[:cut]
	}

	raw, err := e.gen.GenerateText(ctx, buildImportPrompt(rawText))
	if err != nil {
		return nil, &ExtractionError{Stage: "generate", Err: err}
	}

	clean := cleanModelJSON(raw)

	var candidates []Candidate
	if err := json.Unmarshal([]byte(clean), &candidates); err != nil {
		return nil, &ExtractionError{Stage: "decode", Err: fmt.Errorf("unmarshal JSON: %w (raw response: %.200s)", err, raw)}
	}

	return candidates, nil
}

// cleanModelJSON strips markdown code fences and surrounding prose that the
// model sometimes emits despite the instructions, keeping only the JSON
// array payload.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON array, keep only from the
	// first '[' to the last ']'.
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
