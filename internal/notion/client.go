// Package notion wraps the mirror store: the Notion databases holding task
// records and the user/project relation tables.
package notion

import (
	"context"
	"fmt"
	"os"

	"github.com/jomei/notionapi"

	"github.com/naag/gh-notion-sync/internal/paginate"
)

// Client defines the interface for interacting with the mirror store
type Client interface {
	// QueryDatabase retrieves every page of a database, fully draining the
	// store's cursor pagination. A nil filter returns all rows.
	QueryDatabase(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error)

	// CreatePage creates a record in a database and returns its identifier
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (string, error)

	// UpdatePage overwrites properties of an existing record and returns its
	// identifier
	UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (string, error)
}

// APIClient implements the Client interface using the Notion HTTP API
type APIClient struct {
	client *notionapi.Client
}

// NewAPIClient creates a new Notion client using the token from the
// NOTION_TOKEN env var
func NewAPIClient() (*APIClient, error) {
	token := os.Getenv("NOTION_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN environment variable not set")
	}
	return &APIClient{client: notionapi.NewClient(notionapi.Token(token))}, nil
}

// QueryDatabase implements the Client interface
func (c *APIClient) QueryDatabase(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	return paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[notionapi.Page], error) {
		request := &notionapi.DatabaseQueryRequest{
			Filter:   filter,
			PageSize: 100,
		}
		if cursor != "" {
			request.StartCursor = notionapi.Cursor(cursor)
		}

		response, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), request)
		if err != nil {
			return paginate.Page[notionapi.Page]{}, fmt.Errorf("failed to query database %s: %w", databaseID, err)
		}

		return paginate.Page[notionapi.Page]{
			Nodes:       response.Results,
			EndCursor:   string(response.NextCursor),
			HasNextPage: response.HasMore,
		}, nil
	})
}

// CreatePage implements the Client interface
func (c *APIClient) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (string, error) {
	page, err := c.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	return page.ID.String(), nil
}

// UpdatePage implements the Client interface
func (c *APIClient) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (string, error) {
	page, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: properties,
	})
	if err != nil {
		return "", fmt.Errorf("failed to update page %s: %w", pageID, err)
	}
	return page.ID.String(), nil
}
