// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structured converts raw completion text into validated Go values.
// Language models return near-JSON more often than JSON: the payload is
// frequently wrapped in a Markdown code fence, sometimes with a language
// tag. Every stage that consumes a completion goes through this package so
// the failure contract is identical at all use sites.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fence = "```"

// ParseError reports a decoding failure. It retains the offending raw text
// so the caller can surface it alongside the decoder diagnostic.
type ParseError struct {
	Raw string
	Err error
}

// Error formats the decoder diagnostic followed by the raw text.
func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding structured output: %v; raw output: %s", e.Err, e.Raw)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses raw completion text into v. Leading and trailing whitespace
// is stripped; when the text begins with a code fence the first fenced
// segment is extracted and a leading "json" language tag removed. Decoding
// is strict JSON. On failure Decode returns a *ParseError and leaves v
// untouched beyond what encoding/json wrote; it never panics.
func Decode(raw string, v any) error {
	text := Unfence(raw)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

// DecodeLenient parses raw into v and reports whether decoding succeeded.
// Callers that degrade gracefully on unparsable input use this instead of
// Decode.
func DecodeLenient(raw string, v any) bool {
	return Decode(raw, v) == nil
}

// Unfence strips a surrounding Markdown code fence from s, if present, and
// removes a leading "json" language tag. Text without a fence is returned
// trimmed but otherwise untouched.
func Unfence(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	inner := text[len(fence):]
	if end := strings.Index(inner, fence); end >= 0 {
		inner = inner[:end]
	}
	inner = strings.TrimSpace(inner)

	// The language tag sits on the opening fence line: ```json
	if rest, ok := strings.CutPrefix(inner, "json"); ok {
		inner = strings.TrimSpace(rest)
	}
	return inner
}
