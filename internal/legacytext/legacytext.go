// Package legacytext recovers text runs produced by older East-Asian
// authoring tools that wrote GBK-encoded bytes into what OOXML requires
// to be well-formed UTF-8. Modern PowerPoint never does this, but decks
// re-saved by legacy converters occasionally do, and a naive UTF-8 decode
// of those runs produces mojibake instead of the text-skipped recovery
// spec.md §7 prescribes for a malformed run.
package legacytext

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Recover returns s unchanged if it is already valid UTF-8. Otherwise it
// attempts a GBK decode of the raw bytes and returns that on success, or
// s unchanged if the GBK decode also fails — never an error, matching the
// "reference-dangling" style silent-recovery contract the rest of the
// pipeline uses for malformed input.
func Recover(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil || !utf8.Valid(decoded) {
		return string(raw)
	}
	return string(decoded)
}
