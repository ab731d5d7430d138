package github

import (
	"sort"
	"strings"
)

// Issue is a snapshot of one GitHub issue, fetched fresh each run.
type Issue struct {
	ID         string
	Number     int
	URL        string
	Title      string
	Body       string
	State      string // OPEN or CLOSED
	Labels     []string
	Assignees  []string // logins
	Milestone  string   // title, empty when unset
	Repository string   // nameWithOwner
	Type       string   // issue type name, empty when unset
}

// Closed reports whether the issue's lifecycle state is closed.
func (i Issue) Closed() bool {
	return strings.EqualFold(i.State, "CLOSED")
}

// HasLabel reports whether the issue carries the given label,
// case-insensitively.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// FieldValue represents a project field value. Exactly one variant is
// populated in well-formed data.
type FieldValue struct {
	Text   *string
	Number *float64
}

// ProjectItem is one Projects v2 item whose content is an issue, with its
// custom field values keyed by field name.
type ProjectItem struct {
	ProjectNumber int
	ProjectTitle  string
	IssueID       string
	IssueURL      string
	Fields        map[string]FieldValue
}

// TextField returns the text or single-select value of the named field,
// or empty when the field is absent or non-textual.
func (p ProjectItem) TextField(name string) string {
	if v, ok := p.Fields[name]; ok && v.Text != nil {
		return *v.Text
	}
	return ""
}

// NumberField returns the numeric value of the named field, or nil when the
// field is absent or non-numeric.
func (p ProjectItem) NumberField(name string) *float64 {
	if v, ok := p.Fields[name]; ok {
		return v.Number
	}
	return nil
}

// MatchItems returns every project item referencing the given issue, in
// project-number-ascending order so "first project" is stable across runs.
func MatchItems(items []ProjectItem, issueID string) []ProjectItem {
	var matched []ProjectItem
	for _, item := range items {
		if item.IssueID == issueID {
			matched = append(matched, item)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ProjectNumber < matched[j].ProjectNumber
	})
	return matched
}

// ScopeType selects how project data is enumerated.
type ScopeType int

const (
	// ScopeRepo enumerates projects linked to a single repository
	ScopeRepo ScopeType = iota
	// ScopeOrg enumerates every project of an organization
	ScopeOrg
)

// Scope identifies where project data is fetched from.
type Scope struct {
	Type  ScopeType
	Owner string
	Repo  string // required for ScopeRepo
}
