package adapter

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// descriptionLimit caps the display copy of a job description.
const descriptionLimit = 500

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities (no-op on already-plain text), strips all
// tags, then collapses whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// truncateDescription shortens text to the display limit, marking the cut
// with an ellipsis. The limit counts runes, not bytes, so multibyte text is
// never split mid-character. The untruncated value is kept in FullDescription.
func truncateDescription(text string) string {
	if len(text) <= descriptionLimit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= descriptionLimit {
		return text
	}
	return string(runes[:descriptionLimit]) + "..."
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// groupThousands formats a non-negative integer with comma separators
// ("12345" -> "12,345") for human-readable salary strings.
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
