package news

import (
	"html"
	"regexp"
	"strings"
)

// The legacy corpus mixes HTML entities, FusionNews "&br;" markers, BBCode,
// and 90s-era font tags. CleanContent normalizes all of that into plain,
// harmless HTML once, at import time.

var (
	urlTagPattern      = regexp.MustCompile(`(?is)\[url\s*=\s*([^\]]+)\](.*?)\[/url\]`)
	urlBareTagPattern  = regexp.MustCompile(`(?is)\[url\](.*?)\[/url\]`)
	imgTagPattern      = regexp.MustCompile(`(?i)\[img\]\s*(https?://[^\s\[\]]+)\s*\[/img\]`)
	colorTagPattern    = regexp.MustCompile(`(?is)\[color\s*=\s*([^\]]+)\](.*?)\[/color\]`)
	boldTagPattern     = regexp.MustCompile(`(?is)\[b\](.*?)\[/b\]`)
	italicTagPattern   = regexp.MustCompile(`(?is)\[i\](.*?)\[/i\]`)
	underlineTagPattern = regexp.MustCompile(`(?is)\[u\](.*?)\[/u\]`)

	dangerousTagPattern = regexp.MustCompile(`(?i)</?(script|style|iframe|object|embed)[^>]*>`)
	fontOpenPattern     = regexp.MustCompile(`(?i)<font\b[^>]*>`)
	fontColorPattern    = regexp.MustCompile(`(?i)color\s*=\s*['"]?(#[0-9a-fA-F]{3,6}|[a-zA-Z]+)`)
	eventAttrPattern    = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*("[^"]*"|'[^']*')`)
	jsHrefPattern       = regexp.MustCompile(`(?i)href\s*=\s*['"]\s*javascript:[^'"]*['"]`)
	colorValuePattern   = regexp.MustCompile(`[^#a-zA-Z0-9(),.%\s-]`)

	multiSpacePattern = regexp.MustCompile(`[ \t]{2,}`)
	multiBreakPattern = regexp.MustCompile(`(?i)(<br\s*/?>\s*){3,}`)
)

// CleanContent decodes entities, converts the supported BBCode subset to
// HTML, strips script-capable markup, and normalizes whitespace.
func CleanContent(text string) string {
	text = strings.ReplaceAll(text, " &br;", "<br>")
	text = strings.ReplaceAll(text, "&br;", "<br>")
	text = html.UnescapeString(text)

	text = urlTagPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := urlTagPattern.FindStringSubmatch(s)
		href := upgradeScheme(strings.Trim(m[1], ` '"`))
		return `<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener">` + m[2] + `</a>`
	})
	text = urlBareTagPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := urlBareTagPattern.FindStringSubmatch(s)
		href := upgradeScheme(strings.TrimSpace(m[1]))
		return `<a href="` + html.EscapeString(href) + `" target="_blank" rel="noopener">` + html.EscapeString(m[1]) + `</a>`
	})
	text = imgTagPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := imgTagPattern.FindStringSubmatch(s)
		return `<img src="` + html.EscapeString(upgradeScheme(m[1])) + `" alt="">`
	})
	text = colorTagPattern.ReplaceAllStringFunc(text, func(s string) string {
		m := colorTagPattern.FindStringSubmatch(s)
		color := colorValuePattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
		return `<span style="color:` + html.EscapeString(color) + `;">` + m[2] + `</span>`
	})
	text = boldTagPattern.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicTagPattern.ReplaceAllString(text, "<em>$1</em>")
	text = underlineTagPattern.ReplaceAllString(text, "<u>$1</u>")

	text = dangerousTagPattern.ReplaceAllString(text, "")
	text = fontOpenPattern.ReplaceAllStringFunc(text, func(s string) string {
		if m := fontColorPattern.FindStringSubmatch(s); m != nil {
			return `<span style="color:` + m[1] + `;">`
		}
		return "<span>"
	})
	text = strings.ReplaceAll(text, "</font>", "</span>")
	text = strings.ReplaceAll(text, "</FONT>", "</span>")
	text = eventAttrPattern.ReplaceAllString(text, "")
	text = jsHrefPattern.ReplaceAllString(text, `href="#"`)

	// Legacy artifacts: non-breaking spaces, replacement chars, list bullets.
	replacer := strings.NewReplacer(
		" ", " ",
		"�", "",
		"■", " ",
		"□", " ",
		"▪", " ",
		"▫", " ",
		"●", " ",
	)
	text = replacer.Replace(text)
	text = multiSpacePattern.ReplaceAllString(text, " ")
	text = multiBreakPattern.ReplaceAllString(text, "<br><br>")

	return strings.TrimSpace(text)
}

// upgradeScheme rewrites http:// to https:// so embedded links don't
// trigger mixed-content blocking.
func upgradeScheme(u string) string {
	if strings.HasPrefix(strings.ToLower(u), "http://") {
		return "https://" + u[len("http://"):]
	}
	return u
}
