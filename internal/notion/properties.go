package notion

import (
	"strings"

	"github.com/jomei/notionapi"
)

// urlValue extracts the raw URL from a url property, or empty when the
// property is absent or of another kind.
func urlValue(p notionapi.Property) string {
	if u, ok := p.(*notionapi.URLProperty); ok {
		return u.URL
	}
	return ""
}

// textValue extracts a single string from whichever text-bearing kind the
// property carries. Relation tables store their key either as plain text or
// as a formula result, depending on how the database is set up.
func textValue(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.TitleProperty:
		return plainText(v.Title)
	case *notionapi.RichTextProperty:
		return plainText(v.RichText)
	case *notionapi.SelectProperty:
		return v.Select.Name
	case *notionapi.FormulaProperty:
		return v.Formula.String
	default:
		return ""
	}
}

func plainText(runs []notionapi.RichText) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		if run.PlainText != "" {
			parts = append(parts, run.PlainText)
		} else if run.Text != nil {
			parts = append(parts, run.Text.Content)
		}
	}
	return strings.Join(parts, " ")
}
