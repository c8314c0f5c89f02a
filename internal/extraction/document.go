// Package extraction converts opaque uploaded documents into plain text.
//
// Extraction runs an ordered fallback chain: a primary PDF decoder, a
// secondary PDF decoder, then a lossy plain-text decode of the raw bytes.
// The chain stops at the first decoder that yields usable text. Extraction
// never fails: total failure is reported as a Result with Source == SourceNone.
package extraction

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	lpdf "github.com/ledongthuc/pdf"
	rpdf "rsc.io/pdf"
)

// Source identifies which decoder produced the extracted text.
type Source string

const (
	// SourcePrimary: primary PDF decoder succeeded.
	SourcePrimary Source = "primary"
	// SourceSecondary: secondary PDF decoder succeeded; the primary yielded
	// no text but did not fail structurally.
	SourceSecondary Source = "secondary"
	// SourceFallbackRecovered: secondary PDF decoder succeeded after the
	// primary failed with a structural error.
	SourceFallbackRecovered Source = "fallback-recovered"
	// SourcePlainDecode: raw bytes interpreted directly as UTF-8 text.
	SourcePlainDecode Source = "plain-decode"
	// SourceNone: no decoder produced usable text. Text is always empty.
	SourceNone Source = "none"
)

// Diagnostic note tags carried on Result.Note.
const (
	NoteEmptyInput    = "empty_input"
	NoteTruncated     = "input_truncated"
	NotePrimaryFailed = "primary_failed_used_fallback"
	NoteNoText        = "no_text_extracted"
)

const (
	// MaxDocumentBytes caps input size; excess bytes are truncated before
	// any decoding attempt and the truncation is surfaced via NoteTruncated.
	MaxDocumentBytes = 5 << 20

	// minPlainTextRunes is the minimum decoded length for the plain-text
	// fallback to count as real content rather than binary noise.
	minPlainTextRunes = 30
)

// Result is the outcome of a text extraction attempt.
// Invariant: Source == SourceNone exactly when Text == "".
type Result struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
	Note   string `json:"note,omitempty"`
}

// ExtractText runs the fallback chain over the given document bytes.
// It never returns an error; malformed or empty input yields a Result with
// SourceNone and a diagnostic note.
func ExtractText(data []byte) Result {
	if len(data) == 0 {
		return Result{Source: SourceNone, Note: NoteEmptyInput}
	}

	var notes []string
	if len(data) > MaxDocumentBytes {
		data = data[:MaxDocumentBytes]
		notes = append(notes, NoteTruncated)
	}

	primaryFailed := false
	if text, err := primaryText(data); err == nil && text != "" {
		return Result{Text: text, Source: SourcePrimary, Note: joinNotes(notes)}
	} else if err != nil {
		// Structural failure: record it and keep going down the chain.
		primaryFailed = true
		notes = append(notes, NotePrimaryFailed)
	}

	if text, err := secondaryText(data); err == nil && text != "" {
		source := SourceSecondary
		if primaryFailed {
			source = SourceFallbackRecovered
		}
		return Result{Text: text, Source: source, Note: joinNotes(notes)}
	}

	if text := plainDecode(data); text != "" {
		return Result{Text: text, Source: SourcePlainDecode, Note: joinNotes(notes)}
	}

	notes = append(notes, NoteNoText)
	return Result{Source: SourceNone, Note: joinNotes(notes)}
}

// primaryText extracts page text using the primary PDF decoder. Per-page
// failures are swallowed; a non-nil error means the document itself could
// not be read (structural corruption), which callers treat as a signal to
// fall back rather than abort.
func primaryText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("primary decoder panic: %v", r)
		}
	}()

	reader, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("primary decoder: %w", err)
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := pageTextSafe(page)
		if pageErr != nil {
			continue // this page contributes nothing; keep going
		}
		if pageText != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

// pageTextSafe wraps a single page extraction so a malformed page cannot
// take down the whole pass.
func pageTextSafe(page lpdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("page panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}

// secondaryText extracts page text using the alternate PDF decoder, with the
// same per-page fault tolerance as the primary.
func secondaryText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("secondary decoder panic: %v", r)
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("secondary decoder: %w", err)
	}

	var parts []string
	for i := 1; i <= reader.NumPage(); i++ {
		pageText := secondaryPageText(reader.Page(i))
		if pageText != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func secondaryPageText(page rpdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	if page.V.IsNull() {
		return ""
	}
	var sb strings.Builder
	for _, item := range page.Content().Text {
		sb.WriteString(item.S)
	}
	return strings.TrimSpace(sb.String())
}

// plainDecode interprets the raw bytes directly as UTF-8 text, dropping
// invalid sequences. Results at or below the minimum length are treated as
// noise and rejected.
func plainDecode(data []byte) string {
	decoded := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
	if utf8.RuneCountInString(decoded) <= minPlainTextRunes {
		return ""
	}
	return decoded
}

func joinNotes(notes []string) string {
	return strings.Join(notes, ",")
}
