package github

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naag/gh-notion-sync/internal/paginate"
)

// GraphQLClient implements the Client interface using GitHub's GraphQL API
type GraphQLClient struct {
	client            *githubv4.Client
	excludedIssueType string
}

// NewGraphQLClient creates a new GitHub GraphQL client using the token from
// GITHUB_TOKEN env var. Issues whose type name equals excludedIssueType are
// dropped from fetch results; an empty value disables the filter.
func NewGraphQLClient(excludedIssueType string, verbose bool) (*GraphQLClient, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable not set")
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)

	if verbose {
		httpClient.Transport = &debugTransport{
			transport: httpClient.Transport,
		}
	}

	client := githubv4.NewClient(httpClient)
	return &GraphQLClient{client: client, excludedIssueType: excludedIssueType}, nil
}

// pageInfo mirrors the GraphQL PageInfo selection used by every connection
type pageInfo struct {
	EndCursor   githubv4.String
	HasNextPage bool
}

// cursorVar converts a drain cursor into the nullable GraphQL variable form
func cursorVar(cursor string) *githubv4.String {
	if cursor == "" {
		return (*githubv4.String)(nil)
	}
	return githubv4.NewString(githubv4.String(cursor))
}

// GraphQL node types for the issue query
type issueNode struct {
	ID     string
	Number int
	Title  string
	Body   string
	State  githubv4.IssueState
	URL    string
	Labels struct {
		Nodes []struct{ Name string }
	} `graphql:"labels(first: 50)"`
	Assignees struct {
		Nodes []struct{ Login string }
	} `graphql:"assignees(first: 20)"`
	Milestone *struct {
		Title string
	}
	Repository struct {
		NameWithOwner string
	}
	IssueType *struct {
		Name string
	} `graphql:"issueType"`
}

// FetchIssues implements the Client interface
func (c *GraphQLClient) FetchIssues(ctx context.Context, owner, repo string) ([]Issue, error) {
	nodes, err := paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[issueNode], error) {
		var query struct {
			Repository struct {
				Issues struct {
					Nodes    []issueNode
					PageInfo pageInfo
				} `graphql:"issues(first: 100, after: $cursor)"`
			} `graphql:"repository(owner: $owner, name: $name)"`
		}

		variables := map[string]interface{}{
			"owner":  githubv4.String(owner),
			"name":   githubv4.String(repo),
			"cursor": cursorVar(cursor),
		}

		if err := c.client.Query(ctx, &query, variables); err != nil {
			return paginate.Page[issueNode]{}, fmt.Errorf("failed to query repository issues: %w", err)
		}

		return paginate.Page[issueNode]{
			Nodes:       query.Repository.Issues.Nodes,
			EndCursor:   string(query.Repository.Issues.PageInfo.EndCursor),
			HasNextPage: query.Repository.Issues.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(nodes))
	for _, node := range nodes {
		issue := Issue{
			ID:         node.ID,
			Number:     node.Number,
			URL:        node.URL,
			Title:      node.Title,
			Body:       node.Body,
			State:      string(node.State),
			Repository: node.Repository.NameWithOwner,
		}
		for _, l := range node.Labels.Nodes {
			issue.Labels = append(issue.Labels, l.Name)
		}
		for _, a := range node.Assignees.Nodes {
			issue.Assignees = append(issue.Assignees, a.Login)
		}
		if node.Milestone != nil {
			issue.Milestone = node.Milestone.Title
		}
		if node.IssueType != nil {
			issue.Type = node.IssueType.Name
		}
		if c.excludedIssueType != "" && strings.EqualFold(issue.Type, c.excludedIssueType) {
			slog.Debug("excluding issue by type", "issue", issue.URL, "type", issue.Type)
			continue
		}
		issues = append(issues, issue)
	}

	slog.Debug("fetched issues", "owner", owner, "repo", repo, "count", len(issues))
	return issues, nil
}

// GraphQL node types for the project queries
type (
	projectNode struct {
		ID     string
		Number int
		Title  string
		Closed bool
	}

	projectConnection struct {
		Nodes    []projectNode
		PageInfo pageInfo
	}

	// fieldCommon selects the field name from the field configuration union
	fieldCommon struct {
		Common struct {
			Name string
		} `graphql:"... on ProjectV2FieldCommon"`
	}

	// fieldValueNode covers the field value variants the engine recognizes:
	// free text, number and single select. Other variants decode with an
	// empty field name and are dropped during normalization.
	fieldValueNode struct {
		TypeName string `graphql:"__typename"`
		Text     struct {
			Text  *string
			Field fieldCommon
		} `graphql:"... on ProjectV2ItemFieldTextValue"`
		Number struct {
			Number *float64
			Field  fieldCommon
		} `graphql:"... on ProjectV2ItemFieldNumberValue"`
		SingleSelect struct {
			Name  *string
			Field fieldCommon
		} `graphql:"... on ProjectV2ItemFieldSingleSelectValue"`
	}

	itemNode struct {
		ID      string
		Content struct {
			TypeName string `graphql:"__typename"`
			Issue    struct {
				ID     string
				Number int
				URL    string
			} `graphql:"... on Issue"`
		}
		FieldValues struct {
			Nodes    []fieldValueNode
			PageInfo pageInfo
		} `graphql:"fieldValues(first: 50)"`
	}
)

// FetchProjectData implements the Client interface. The project list, the
// field list per project, the item list per project and the field value list
// per item are each paginated independently; all four are drained fully.
func (c *GraphQLClient) FetchProjectData(ctx context.Context, scope Scope) ([]ProjectItem, error) {
	projects, err := c.drainProjects(ctx, scope)
	if err != nil {
		return nil, err
	}

	var result []ProjectItem
	for _, project := range projects {
		if project.Closed {
			slog.Debug("skipping closed project", "project", project.Number)
			continue
		}

		fieldNames, err := c.drainProjectFields(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		slog.Debug("fetched project fields",
			"project", project.Number,
			"fields", strings.Join(fieldNames, ", "),
		)

		items, err := c.drainProjectItems(ctx, project.ID)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			if item.Content.TypeName != "Issue" {
				continue
			}
			values := item.FieldValues.Nodes
			if item.FieldValues.PageInfo.HasNextPage {
				values, err = c.drainItemFieldValues(ctx, item.ID)
				if err != nil {
					return nil, err
				}
			}
			result = append(result, ProjectItem{
				ProjectNumber: project.Number,
				ProjectTitle:  project.Title,
				IssueID:       item.Content.Issue.ID,
				IssueURL:      item.Content.Issue.URL,
				Fields:        normalizeFieldValues(values),
			})
		}
	}

	slog.Debug("fetched project data", "projects", len(projects), "items", len(result))
	return result, nil
}

func (c *GraphQLClient) drainProjects(ctx context.Context, scope Scope) ([]projectNode, error) {
	return paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[projectNode], error) {
		var connection projectConnection

		switch scope.Type {
		case ScopeOrg:
			var query struct {
				Organization struct {
					ProjectsV2 projectConnection `graphql:"projectsV2(first: 50, after: $cursor)"`
				} `graphql:"organization(login: $owner)"`
			}
			variables := map[string]interface{}{
				"owner":  githubv4.String(scope.Owner),
				"cursor": cursorVar(cursor),
			}
			if err := c.client.Query(ctx, &query, variables); err != nil {
				return paginate.Page[projectNode]{}, fmt.Errorf("failed to query organization projects: %w", err)
			}
			connection = query.Organization.ProjectsV2
		case ScopeRepo:
			var query struct {
				Repository struct {
					ProjectsV2 projectConnection `graphql:"projectsV2(first: 50, after: $cursor)"`
				} `graphql:"repository(owner: $owner, name: $name)"`
			}
			variables := map[string]interface{}{
				"owner":  githubv4.String(scope.Owner),
				"name":   githubv4.String(scope.Repo),
				"cursor": cursorVar(cursor),
			}
			if err := c.client.Query(ctx, &query, variables); err != nil {
				return paginate.Page[projectNode]{}, fmt.Errorf("failed to query repository projects: %w", err)
			}
			connection = query.Repository.ProjectsV2
		default:
			return paginate.Page[projectNode]{}, fmt.Errorf("invalid project scope")
		}

		return paginate.Page[projectNode]{
			Nodes:       connection.Nodes,
			EndCursor:   string(connection.PageInfo.EndCursor),
			HasNextPage: connection.PageInfo.HasNextPage,
		}, nil
	})
}

func (c *GraphQLClient) drainProjectFields(ctx context.Context, projectID string) ([]string, error) {
	return paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[string], error) {
		var query struct {
			Node struct {
				Project struct {
					Fields struct {
						Nodes    []fieldCommon
						PageInfo pageInfo
					} `graphql:"fields(first: 100, after: $cursor)"`
				} `graphql:"... on ProjectV2"`
			} `graphql:"node(id: $id)"`
		}

		variables := map[string]interface{}{
			"id":     githubv4.ID(projectID),
			"cursor": cursorVar(cursor),
		}

		if err := c.client.Query(ctx, &query, variables); err != nil {
			return paginate.Page[string]{}, fmt.Errorf("failed to query project fields: %w", err)
		}

		fields := query.Node.Project.Fields
		names := make([]string, 0, len(fields.Nodes))
		for _, f := range fields.Nodes {
			names = append(names, f.Common.Name)
		}
		return paginate.Page[string]{
			Nodes:       names,
			EndCursor:   string(fields.PageInfo.EndCursor),
			HasNextPage: fields.PageInfo.HasNextPage,
		}, nil
	})
}

func (c *GraphQLClient) drainProjectItems(ctx context.Context, projectID string) ([]itemNode, error) {
	return paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[itemNode], error) {
		var query struct {
			Node struct {
				Project struct {
					Items struct {
						Nodes    []itemNode
						PageInfo pageInfo
					} `graphql:"items(first: 100, after: $cursor)"`
				} `graphql:"... on ProjectV2"`
			} `graphql:"node(id: $id)"`
		}

		variables := map[string]interface{}{
			"id":     githubv4.ID(projectID),
			"cursor": cursorVar(cursor),
		}

		if err := c.client.Query(ctx, &query, variables); err != nil {
			return paginate.Page[itemNode]{}, fmt.Errorf("failed to query project items: %w", err)
		}

		items := query.Node.Project.Items
		return paginate.Page[itemNode]{
			Nodes:       items.Nodes,
			EndCursor:   string(items.PageInfo.EndCursor),
			HasNextPage: items.PageInfo.HasNextPage,
		}, nil
	})
}

// drainItemFieldValues refetches the complete field value list of one item.
// Used when the first page embedded in the item query reports more pages.
func (c *GraphQLClient) drainItemFieldValues(ctx context.Context, itemID string) ([]fieldValueNode, error) {
	return paginate.All(ctx, func(ctx context.Context, cursor string) (paginate.Page[fieldValueNode], error) {
		var query struct {
			Node struct {
				Item struct {
					FieldValues struct {
						Nodes    []fieldValueNode
						PageInfo pageInfo
					} `graphql:"fieldValues(first: 50, after: $cursor)"`
				} `graphql:"... on ProjectV2Item"`
			} `graphql:"node(id: $id)"`
		}

		variables := map[string]interface{}{
			"id":     githubv4.ID(itemID),
			"cursor": cursorVar(cursor),
		}

		if err := c.client.Query(ctx, &query, variables); err != nil {
			return paginate.Page[fieldValueNode]{}, fmt.Errorf("failed to query item field values: %w", err)
		}

		values := query.Node.Item.FieldValues
		return paginate.Page[fieldValueNode]{
			Nodes:       values.Nodes,
			EndCursor:   string(values.PageInfo.EndCursor),
			HasNextPage: values.PageInfo.HasNextPage,
		}, nil
	})
}

// normalizeFieldValues collapses the field value union into one typed value
// per field name, preferring whichever variant is populated.
func normalizeFieldValues(values []fieldValueNode) map[string]FieldValue {
	fields := make(map[string]FieldValue)
	for _, v := range values {
		switch v.TypeName {
		case "ProjectV2ItemFieldTextValue":
			if v.Text.Field.Common.Name != "" && v.Text.Text != nil {
				fields[v.Text.Field.Common.Name] = FieldValue{Text: v.Text.Text}
			}
		case "ProjectV2ItemFieldNumberValue":
			if v.Number.Field.Common.Name != "" && v.Number.Number != nil {
				fields[v.Number.Field.Common.Name] = FieldValue{Number: v.Number.Number}
			}
		case "ProjectV2ItemFieldSingleSelectValue":
			if v.SingleSelect.Field.Common.Name != "" && v.SingleSelect.Name != nil {
				fields[v.SingleSelect.Field.Common.Name] = FieldValue{Text: v.SingleSelect.Name}
			}
		}
	}
	return fields
}
