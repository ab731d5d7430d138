package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUsers(t *testing.T) {
	client := &MockClient{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
			assert.Equal(t, "users-db", databaseID)
			return []notionapi.Page{
				{
					ID: "row-1",
					Properties: notionapi.Properties{
						"GitHub": &notionapi.URLProperty{URL: "https://github.com/octocat"},
						"Person": &notionapi.PeopleProperty{People: []notionapi.User{{ID: "user-1"}, {ID: "user-2"}}},
					},
				},
				{
					// trailing slash on the identity URL
					ID: "row-2",
					Properties: notionapi.Properties{
						"GitHub": &notionapi.URLProperty{URL: "https://github.com/hubot/"},
						"Person": &notionapi.PeopleProperty{People: []notionapi.User{{ID: "user-3"}}},
					},
				},
				{
					// no person assigned: skipped
					ID: "row-3",
					Properties: notionapi.Properties{
						"GitHub": &notionapi.URLProperty{URL: "https://github.com/ghost"},
						"Person": &notionapi.PeopleProperty{},
					},
				},
				{
					// no identity URL: skipped
					ID: "row-4",
					Properties: notionapi.Properties{
						"Person": &notionapi.PeopleProperty{People: []notionapi.User{{ID: "user-4"}}},
					},
				},
			}, nil
		},
	}

	users, err := ResolveUsers(context.Background(), client, "users-db", "GitHub", "Person")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"octocat": "user-1",
		"hubot":   "user-3",
	}, users)
}

func TestResolveProjects(t *testing.T) {
	client := &MockClient{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
			return []notionapi.Page{
				{
					ID: "proj-1",
					Properties: notionapi.Properties{
						"Project KEY": &notionapi.FormulaProperty{Formula: notionapi.Formula{String: "ALPHA"}},
					},
				},
				{
					ID: "proj-2",
					Properties: notionapi.Properties{
						"Project KEY": &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "BETA"}}},
					},
				},
				{
					// soft-deleted: skipped
					ID:       "proj-3",
					Archived: true,
					Properties: notionapi.Properties{
						"Project KEY": &notionapi.FormulaProperty{Formula: notionapi.Formula{String: "GAMMA"}},
					},
				},
				{
					// empty key: skipped
					ID: "proj-4",
					Properties: notionapi.Properties{
						"Project KEY": &notionapi.FormulaProperty{Formula: notionapi.Formula{}},
					},
				},
			}, nil
		},
	}

	projects, err := ResolveProjects(context.Background(), client, "projects-db", "Project KEY")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ALPHA": "proj-1",
		"BETA":  "proj-2",
	}, projects)
}

func TestHandleFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/octocat", "octocat"},
		{"https://github.com/octocat/", "octocat"},
		{"", ""},
		{"no-slashes", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, handleFromURL(tt.url), "url %q", tt.url)
	}
}
