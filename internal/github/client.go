package github

import (
	"context"
)

// Client defines the interface for reading issue and project data from GitHub
type Client interface {
	// FetchIssues retrieves every issue of a repository, excluding issues
	// whose type matches the configured excluded type
	FetchIssues(ctx context.Context, owner, repo string) ([]Issue, error)

	// FetchProjectData retrieves every item of every open project in scope,
	// with all custom field values
	FetchProjectData(ctx context.Context, scope Scope) ([]ProjectItem, error)
}
