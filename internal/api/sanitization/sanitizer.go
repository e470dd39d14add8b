package sanitization

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	newlineRegex    = regexp.MustCompile(`\r\n|\r|\n`)
	headerBreaks    = strings.NewReplacer("\r", " ", "\n", " ")
)

// EscapeHTML escapes user content before it is embedded in an HTML body
func EscapeHTML(input string) string {
	return template.HTMLEscapeString(input)
}

// MessageToHTML escapes a multi-line message and turns line breaks into <br>
func MessageToHTML(input string) string {
	return newlineRegex.ReplaceAllString(EscapeHTML(input), "<br>")
}

// HeaderValue flattens a value so it cannot inject extra mail headers
func HeaderValue(input string) string {
	return strings.TrimSpace(headerBreaks.Replace(input))
}

// StripWhitespace removes every whitespace character
func StripWhitespace(input string) string {
	return whitespaceRegex.ReplaceAllString(input, "")
}
