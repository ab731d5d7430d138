package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchItemsOrdering(t *testing.T) {
	items := []ProjectItem{
		{ProjectNumber: 9, IssueID: "I_1"},
		{ProjectNumber: 2, IssueID: "I_2"},
		{ProjectNumber: 4, IssueID: "I_1"},
		{ProjectNumber: 1, IssueID: "I_1"},
	}

	matched := MatchItems(items, "I_1")

	assert.Len(t, matched, 3)
	assert.Equal(t, 1, matched[0].ProjectNumber)
	assert.Equal(t, 4, matched[1].ProjectNumber)
	assert.Equal(t, 9, matched[2].ProjectNumber)
}

func TestMatchItemsNoMatch(t *testing.T) {
	items := []ProjectItem{{ProjectNumber: 1, IssueID: "I_1"}}
	assert.Empty(t, MatchItems(items, "I_99"))
}

func TestIssueClosed(t *testing.T) {
	assert.True(t, Issue{State: "CLOSED"}.Closed())
	assert.True(t, Issue{State: "closed"}.Closed())
	assert.False(t, Issue{State: "OPEN"}.Closed())
}

func TestIssueHasLabel(t *testing.T) {
	issue := Issue{Labels: []string{"Bug", "BLOCKED"}}
	assert.True(t, issue.HasLabel("blocked"))
	assert.True(t, issue.HasLabel("bug"))
	assert.False(t, issue.HasLabel("duplicate"))
}

func TestProjectItemFieldAccessors(t *testing.T) {
	status := "In review"
	estimate := 5.0
	item := ProjectItem{
		Fields: map[string]FieldValue{
			"Status":   {Text: &status},
			"Estimate": {Number: &estimate},
		},
	}

	assert.Equal(t, "In review", item.TextField("Status"))
	assert.Equal(t, "", item.TextField("Estimate"), "numeric field has no text value")
	assert.Equal(t, "", item.TextField("Missing"))

	if assert.NotNil(t, item.NumberField("Estimate")) {
		assert.Equal(t, 5.0, *item.NumberField("Estimate"))
	}
	assert.Nil(t, item.NumberField("Status"))
	assert.Nil(t, item.NumberField("Missing"))
}
