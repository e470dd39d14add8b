package sanitization

import "testing"

func TestMessageToHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"line one\nline two", "line one<br>line two"},
		{"crlf\r\nbreak", "crlf<br>break"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"a & b\n\"c\"", "a &amp; b<br>&#34;c&#34;"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := MessageToHTML(tt.in); got != tt.want {
				t.Errorf("MessageToHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHeaderValue(t *testing.T) {
	got := HeaderValue("Hello\r\nBcc: victim@example.com")
	if got != "Hello  Bcc: victim@example.com" {
		t.Errorf("HeaderValue kept line breaks: %q", got)
	}
}

func TestStripWhitespace(t *testing.T) {
	if got := StripWhitespace(" abcd efgh\tijkl\nmnop "); got != "abcdefghijklmnop" {
		t.Errorf("StripWhitespace = %q", got)
	}
}
