package notion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jomei/notionapi"
)

// Record is an existing row of the tasks database, keyed by the URL of the
// GitHub issue it mirrors.
type Record struct {
	ID         string
	IssueURL   string
	Properties notionapi.Properties
}

// FetchExistingRecords retrieves all task records and indexes them by issue
// URL. Records without a URL value are not yet linked to an issue and are
// skipped. The scan is unfiltered: a server-side non-empty condition on the
// URL property would only narrow it, and the client SDK offers no url filter
// condition.
func FetchExistingRecords(ctx context.Context, client Client, databaseID, urlProperty string) (map[string]Record, error) {
	pages, err := client.QueryDatabase(ctx, databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing records: %w", err)
	}

	records := make(map[string]Record, len(pages))
	for _, page := range pages {
		issueURL := urlValue(page.Properties[urlProperty])
		if issueURL == "" {
			continue
		}
		if existing, ok := records[issueURL]; ok {
			return nil, fmt.Errorf("duplicate mirror records %s and %s for issue %s", existing.ID, page.ID.String(), issueURL)
		}
		records[issueURL] = Record{
			ID:         page.ID.String(),
			IssueURL:   issueURL,
			Properties: page.Properties,
		}
	}

	slog.Debug("fetched existing records", "count", len(records))
	return records, nil
}
