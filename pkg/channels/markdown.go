// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package channels

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reHeaders    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	reBlockquote = regexp.MustCompile(`(?m)^>\s*(.*)$`)
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	reBoldStar   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnder  = regexp.MustCompile(`__(.+?)__`)
	reItalic     = regexp.MustCompile(`\b_([^_]+)_\b`)
	reStrikethru = regexp.MustCompile(`~~(.+?)~~`)
	reList       = regexp.MustCompile(`(?m)^[-*]\s+`)
	reCodeBlock  = regexp.MustCompile("```[\\w]*\\n?([\\s\\S]*?)```")
	reInlineCode = regexp.MustCompile("`([^`]+)`")
)

// renderTelegramHTML converts common markdown to the HTML subset Telegram
// accepts. Code spans are extracted first so their contents survive the other
// rewrites untouched.
func renderTelegramHTML(text string) string {
	if text == "" {
		return ""
	}

	codeBlocks := extractSpans(text, reCodeBlock, "CB")
	text = codeBlocks.text

	inlineCodes := extractSpans(text, reInlineCode, "IC")
	text = inlineCodes.text

	text = reHeaders.ReplaceAllString(text, "$1")
	text = reBlockquote.ReplaceAllString(text, "$1")

	text = escapeHTML(text)

	text = reLink.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = reBoldStar.ReplaceAllString(text, "<b>$1</b>")
	text = reBoldUnder.ReplaceAllString(text, "<b>$1</b>")
	text = reItalic.ReplaceAllStringFunc(text, func(s string) string {
		match := reItalic.FindStringSubmatch(s)
		if len(match) < 2 {
			return s
		}
		return "<i>" + match[1] + "</i>"
	})
	text = reStrikethru.ReplaceAllString(text, "<s>$1</s>")
	text = reList.ReplaceAllString(text, "• ")

	for i, code := range inlineCodes.spans {
		text = strings.ReplaceAll(text,
			fmt.Sprintf("\x00IC%d\x00", i),
			fmt.Sprintf("<code>%s</code>", escapeHTML(code)))
	}
	for i, code := range codeBlocks.spans {
		text = strings.ReplaceAll(text,
			fmt.Sprintf("\x00CB%d\x00", i),
			fmt.Sprintf("<pre><code>%s</code></pre>", escapeHTML(code)))
	}

	return text
}

type spanMatch struct {
	text  string
	spans []string
}

func extractSpans(text string, re *regexp.Regexp, tag string) spanMatch {
	matches := re.FindAllStringSubmatch(text, -1)

	spans := make([]string, 0, len(matches))
	for _, match := range matches {
		spans = append(spans, match[1])
	}

	i := 0
	text = re.ReplaceAllStringFunc(text, func(string) string {
		placeholder := fmt.Sprintf("\x00%s%d\x00", tag, i)
		i++
		return placeholder
	})

	return spanMatch{text: text, spans: spans}
}

func escapeHTML(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

// splitMarkdownChunks splits an over-long reply into chunks below maxLength,
// breaking on line boundaries and re-opening fenced code blocks so no chunk
// carries an unterminated fence.
func splitMarkdownChunks(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	inCodeBlock := false
	codeBlockLang := ""

	lines := strings.Split(text, "\n")
	var current strings.Builder
	currentLen := 0

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			if inCodeBlock {
				codeBlockLang = strings.TrimPrefix(strings.TrimSpace(line), "```")
			} else {
				codeBlockLang = ""
			}
		}

		// Keep headroom for the closing fence this chunk may need.
		lineLen := len(line) + 1
		if currentLen+lineLen > maxLength-20 {
			if inCodeBlock {
				current.WriteString("\n```")
			}

			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0

			if inCodeBlock {
				current.WriteString("```" + codeBlockLang + "\n")
				currentLen += len("```"+codeBlockLang) + 1
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n")
			currentLen++
		}
		current.WriteString(line)
		currentLen += len(line)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
