package notion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jomei/notionapi"
)

// ResolveUsers scans the users relation database and maps GitHub handles to
// Notion user IDs. A row counts only when its identity URL property is
// populated (the handle is the URL's last path segment) and its people
// property names at least one person; the first person is used. Anything
// else is skipped silently.
func ResolveUsers(ctx context.Context, client Client, databaseID, identityProperty, personProperty string) (map[string]string, error) {
	pages, err := client.QueryDatabase(ctx, databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user relations: %w", err)
	}

	users := make(map[string]string)
	for _, page := range pages {
		handle := handleFromURL(urlValue(page.Properties[identityProperty]))
		if handle == "" {
			continue
		}
		people, ok := page.Properties[personProperty].(*notionapi.PeopleProperty)
		if !ok || len(people.People) == 0 {
			continue
		}
		users[handle] = people.People[0].ID.String()
	}

	slog.Debug("resolved user relations", "count", len(users))
	return users, nil
}

// ResolveProjects scans the projects relation database and maps project keys
// to Notion page IDs. Soft-deleted rows and rows without a key are skipped
// silently.
func ResolveProjects(ctx context.Context, client Client, databaseID, keyProperty string) (map[string]string, error) {
	pages, err := client.QueryDatabase(ctx, databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project relations: %w", err)
	}

	projects := make(map[string]string)
	for _, page := range pages {
		if page.Archived {
			continue
		}
		key := textValue(page.Properties[keyProperty])
		if key == "" {
			continue
		}
		projects[key] = page.ID.String()
	}

	slog.Debug("resolved project relations", "count", len(projects))
	return projects, nil
}

// handleFromURL returns the last path segment of an identity URL, e.g.
// "octocat" for https://github.com/octocat.
func handleFromURL(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	if trimmed == "" {
		return ""
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	return trimmed[idx+1:]
}
