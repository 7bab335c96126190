package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeText escapes s for use as element content.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes s for use inside a quoted attribute value. Whitespace
// control characters are encoded so values survive attribute normalization.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
