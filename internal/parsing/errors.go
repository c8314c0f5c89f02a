package parsing

import "fmt"

// ParseError reports that a document yielded no meaningful text to parse.
// It carries a best-effort preview of whatever was extracted so callers can
// surface it to users or logs.
type ParseError struct {
	Message        string
	RawTextPreview string
	Source         string
	Note           string
}

func (e *ParseError) Error() string {
	if e.Note != "" {
		return fmt.Sprintf("resume parse failed: %s (source=%s, note=%s)", e.Message, e.Source, e.Note)
	}
	return fmt.Sprintf("resume parse failed: %s (source=%s)", e.Message, e.Source)
}
