package sync

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// NeedsWrite compares an existing record's properties against the computed
// target set. It returns true as soon as the existing side lacks a field the
// target carries, or any field's canonical form differs. Fields absent from
// the target are never compared, so omitted optional fields never force a
// write.
func NeedsWrite(existing, target notionapi.Properties) bool {
	for name, targetValue := range target {
		existingValue, ok := existing[name]
		if !ok {
			return true
		}
		if canonical(existingValue) != canonical(targetValue) {
			return true
		}
	}
	return false
}

// canonical reduces a property value to a comparable string, per value kind.
// Both API-decoded and locally built values of the same kind reduce to the
// same form.
func canonical(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.TitleProperty:
		return canonicalRichText(v.Title)
	case *notionapi.RichTextProperty:
		return canonicalRichText(v.RichText)
	case *notionapi.SelectProperty:
		return v.Select.Name
	case *notionapi.StatusProperty:
		return v.Status.Name
	case *notionapi.MultiSelectProperty:
		names := make([]string, 0, len(v.MultiSelect))
		for _, option := range v.MultiSelect {
			names = append(names, option.Name)
		}
		return sortedJoin(names)
	case *notionapi.NumberProperty:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case *notionapi.URLProperty:
		return v.URL
	case *notionapi.EmailProperty:
		return v.Email
	case *notionapi.PhoneNumberProperty:
		return v.PhoneNumber
	case *notionapi.RelationProperty:
		ids := make([]string, 0, len(v.Relation))
		for _, relation := range v.Relation {
			ids = append(ids, string(relation.ID))
		}
		return sortedJoin(ids)
	case *notionapi.PeopleProperty:
		ids := make([]string, 0, len(v.People))
		for _, person := range v.People {
			ids = append(ids, string(person.ID))
		}
		return sortedJoin(ids)
	case *notionapi.DateProperty:
		if v.Date == nil || v.Date.Start == nil {
			return ""
		}
		return time.Time(*v.Date.Start).Format(time.RFC3339)
	case *notionapi.FormulaProperty:
		return v.Formula.String
	default:
		return ""
	}
}

func canonicalRichText(runs []notionapi.RichText) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		switch {
		case run.PlainText != "":
			parts = append(parts, run.PlainText)
		case run.Text != nil && run.Text.Content != "":
			parts = append(parts, run.Text.Content)
		}
	}
	return strings.Join(parts, " ")
}

func sortedJoin(values []string) string {
	sort.Strings(values)
	return strings.Join(values, ",")
}
