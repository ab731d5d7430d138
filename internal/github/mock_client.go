package github

import (
	"context"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	FetchIssuesFunc      func(ctx context.Context, owner, repo string) ([]Issue, error)
	FetchProjectDataFunc func(ctx context.Context, scope Scope) ([]ProjectItem, error)
}

// FetchIssues implements the Client interface
func (m *MockClient) FetchIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	if m.FetchIssuesFunc != nil {
		return m.FetchIssuesFunc(ctx, owner, repo)
	}
	return nil, nil
}

// FetchProjectData implements the Client interface
func (m *MockClient) FetchProjectData(ctx context.Context, scope Scope) ([]ProjectItem, error) {
	if m.FetchProjectDataFunc != nil {
		return m.FetchProjectDataFunc(ctx, scope)
	}
	return nil, nil
}
