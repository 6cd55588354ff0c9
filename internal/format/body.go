// Package format turns raw message payloads into display-ready plain text.
package format

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// displayLimit bounds how much body text a single conversational turn shows.
const displayLimit = 1000

const truncationNotice = "\n\n[Message truncated - full content available in your mailbox]"

// HTML2Text extracts the visible text of an HTML document, dropping
// script and style content entirely.
func HTML2Text(raw []byte) string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}

	var sb strings.Builder
	collectText(doc, &sb)

	return strings.TrimSpace(sb.String())
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head":
			return
		case "br", "p", "div", "tr", "li", "h1", "h2", "h3", "h4":
			sb.WriteString("\n")
		}
	}

	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

var (
	tripleBreaks    = regexp.MustCompile(`\n\s*\n\s*\n+`)
	zeroWidthRunes  = regexp.MustCompile("[\u034f\u200b\u200c\u200d\u200e\u200f]+")
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
)

// CleanBody normalizes a message body for display: line endings, runs of
// blank lines, zero-width characters and horizontal whitespace, then
// truncates overly long content with a notice.
func CleanBody(body string) string {
	if body == "" {
		return ""
	}

	cleaned := strings.ReplaceAll(body, "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")
	cleaned = zeroWidthRunes.ReplaceAllString(cleaned, "")
	cleaned = horizontalSpace.ReplaceAllString(cleaned, " ")
	cleaned = tripleBreaks.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > displayLimit {
		cleaned = cleaned[:displayLimit] + truncationNotice
	}

	return cleaned
}

// fallbackDate stands in when a Date header cannot be parsed.
const fallbackDate = "Recently"

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
}

// FriendlyDate parses an RFC 2822 style Date header into a short human
// form, best effort. Trailing comments like "(UTC)" are ignored.
func FriendlyDate(header string) string {
	header = strings.TrimSpace(header)
	if idx := strings.Index(header, "("); idx > 0 {
		header = strings.TrimSpace(header[:idx])
	}

	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, header); err == nil {
			return ts.Format("Jan 2, 2006 at 3:04 PM")
		}
	}

	return fallbackDate
}
