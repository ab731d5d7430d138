package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	QueryDatabaseFunc func(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error)
	CreatePageFunc    func(ctx context.Context, databaseID string, properties notionapi.Properties) (string, error)
	UpdatePageFunc    func(ctx context.Context, pageID string, properties notionapi.Properties) (string, error)
}

// QueryDatabase implements the Client interface
func (m *MockClient) QueryDatabase(ctx context.Context, databaseID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	if m.QueryDatabaseFunc != nil {
		return m.QueryDatabaseFunc(ctx, databaseID, filter)
	}
	return nil, nil
}

// CreatePage implements the Client interface
func (m *MockClient) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (string, error) {
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(ctx, databaseID, properties)
	}
	return "", nil
}

// UpdatePage implements the Client interface
func (m *MockClient) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (string, error) {
	if m.UpdatePageFunc != nil {
		return m.UpdatePageFunc(ctx, pageID, properties)
	}
	return "", nil
}
