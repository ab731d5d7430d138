package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlPage(id, url string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"GitHub Issue": &notionapi.URLProperty{URL: url},
		},
	}
}

func TestFetchExistingRecords(t *testing.T) {
	client := &MockClient{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
			assert.Equal(t, "tasks-db", databaseID)
			assert.Nil(t, filter, "the scan is unfiltered; unlinked rows are dropped client-side")
			return []notionapi.Page{
				urlPage("page-1", "https://github.com/acme/widgets/issues/1"),
				urlPage("page-2", "https://github.com/acme/widgets/issues/2"),
				urlPage("page-3", ""), // not yet linked
				{ID: "page-4", Properties: notionapi.Properties{}},
			}, nil
		},
	}

	records, err := FetchExistingRecords(context.Background(), client, "tasks-db", "GitHub Issue")

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "page-1", records["https://github.com/acme/widgets/issues/1"].ID)
	assert.Equal(t, "page-2", records["https://github.com/acme/widgets/issues/2"].ID)
}

func TestFetchExistingRecordsDuplicateURL(t *testing.T) {
	client := &MockClient{
		QueryDatabaseFunc: func(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
			return []notionapi.Page{
				urlPage("page-1", "https://github.com/acme/widgets/issues/1"),
				urlPage("page-2", "https://github.com/acme/widgets/issues/1"),
			}, nil
		},
	}

	_, err := FetchExistingRecords(context.Background(), client, "tasks-db", "GitHub Issue")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate mirror records")
}
