package channels

import (
	"strings"
	"testing"
)

func TestRenderTelegramHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"bold stars", "**hi**", "<b>hi</b>"},
		{"bold underscores", "__hi__", "<b>hi</b>"},
		{"italic", "say _hello_ now", "say <i>hello</i> now"},
		{"strikethrough", "~~gone~~", "<s>gone</s>"},
		{"link", "[docs](https://example.com)", `<a href="https://example.com">docs</a>`},
		{"header stripped", "# Title", "Title"},
		{"list bullet", "- item", "• item"},
		{"html escaped", "1 < 2 & 3 > 2", "1 &lt; 2 &amp; 3 &gt; 2"},
		{"inline code", "run `go build` now", "run <code>go build</code> now"},
		{"inline code escaped", "`a < b`", "<code>a &lt; b</code>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderTelegramHTML(tt.input); got != tt.want {
				t.Errorf("renderTelegramHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderTelegramHTMLCodeBlock(t *testing.T) {
	input := "see:\n```go\nif a < b {\n}\n```"
	got := renderTelegramHTML(input)

	if !strings.Contains(got, "<pre><code>") || !strings.Contains(got, "</code></pre>") {
		t.Fatalf("code block not wrapped: %q", got)
	}
	if !strings.Contains(got, "a &lt; b") {
		t.Errorf("code block content not escaped: %q", got)
	}
}

func TestSplitMarkdownChunksShortText(t *testing.T) {
	chunks := splitMarkdownChunks("short reply", 4000)
	if len(chunks) != 1 || chunks[0] != "short reply" {
		t.Errorf("splitMarkdownChunks() = %v, want single unchanged chunk", chunks)
	}
}

func TestSplitMarkdownChunksLongText(t *testing.T) {
	line := strings.Repeat("x", 50)
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	chunks := splitMarkdownChunks(sb.String(), 200)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("chunk %d length %d exceeds limit", i, len(chunk))
		}
	}
}

func TestSplitMarkdownChunksClosesCodeFences(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("```go\n")
	for i := 0; i < 30; i++ {
		sb.WriteString(strings.Repeat("y", 40))
		sb.WriteString("\n")
	}
	sb.WriteString("```")

	chunks := splitMarkdownChunks(sb.String(), 300)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if strings.Count(chunk, "```")%2 != 0 {
			t.Errorf("chunk %d has an unterminated code fence:\n%s", i, chunk)
		}
	}
}
