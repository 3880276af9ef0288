package pipeline

import (
	"context"
	"strings"
)

// ContentPlaceholder is the single substitution point in a page template.
const ContentPlaceholder = "{content}"

// SubstituteContent replaces the first placeholder in tmpl with content.
// Reports false when the template has no placeholder; content is then
// appended so nothing is lost.
func SubstituteContent(tmpl, content string) (string, bool) {
	idx := strings.Index(tmpl, ContentPlaceholder)
	if idx == -1 {
		return tmpl + content, false
	}
	return tmpl[:idx] + content + tmpl[idx+len(ContentPlaceholder):], true
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// JoinCSS concatenates stylesheets, skipping empty ones.
func JoinCSS(sheets []string) string {
	var parts []string
	for _, s := range sheets {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
