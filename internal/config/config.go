// Package config loads the sync configuration file. API tokens are not part
// of the file; they come from the GITHUB_TOKEN and NOTION_TOKEN env vars.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scope values for GitHub.Scope
const (
	ScopeRepo = "repo"
	ScopeOrg  = "org"
)

// Policy values for Policy.ProjectLink
const (
	ProjectLinkFirst = "first"
	ProjectLinkAll   = "all"
)

// Policy values for Policy.TaskGroup
const (
	TaskGroupProject = "project"
	TaskGroupFixed   = "fixed"
)

// GitHub identifies where issue and project data is fetched from.
type GitHub struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	// Scope selects project enumeration: "repo" walks the projects linked to
	// the repository, "org" walks every project of the organization.
	Scope string `yaml:"scope"`
	// ExcludedIssueType drops issues of the given type from the sync,
	// e.g. "Epic". Empty disables the filter.
	ExcludedIssueType string `yaml:"excluded_issue_type"`
}

// Notion identifies the mirror databases.
type Notion struct {
	TasksDatabase    string `yaml:"tasks_database"`
	ProjectsDatabase string `yaml:"projects_database"`
	UsersDatabase    string `yaml:"users_database"`
}

// Board names the recognized custom fields on the GitHub project boards.
type Board struct {
	Status     string `yaml:"status"`
	Estimate   string `yaml:"estimate"`
	ProjectKey string `yaml:"project_key"`
}

// Mirror names the properties of the tasks database.
type Mirror struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Assignee    string `yaml:"assignee"`
	IssueURL    string `yaml:"issue_url"`
	Project     string `yaml:"project"`
	TaskGroup   string `yaml:"task_group"`
	Estimate    string `yaml:"estimate"`
}

// Relations names the properties of the relation databases.
type Relations struct {
	UserIdentity string `yaml:"user_identity"`
	UserPerson   string `yaml:"user_person"`
	ProjectKey   string `yaml:"project_key"`
}

// Policy holds the mapping policy variants.
type Policy struct {
	// ProjectLink decides whether the project relation points at the first
	// matched project only or at all of them.
	ProjectLink string `yaml:"project_link"`
	// RequireProject skips issues not on any project board.
	RequireProject bool `yaml:"require_project"`
	// RequireAssignee skips issues without assignees.
	RequireAssignee bool `yaml:"require_assignee"`
	// TaskGroup selects the task group label: "project" uses the first
	// matched project's title, "fixed" uses TaskGroupName.
	TaskGroup     string `yaml:"task_group"`
	TaskGroupName string `yaml:"task_group_name"`
}

// Config holds the full sync configuration.
type Config struct {
	GitHub    GitHub    `yaml:"github"`
	Notion    Notion    `yaml:"notion"`
	Board     Board     `yaml:"board"`
	Mirror    Mirror    `yaml:"mirror"`
	Relations Relations `yaml:"relations"`
	Policy    Policy    `yaml:"policy"`
}

// Default returns a config with every optional field at its default value.
func Default() *Config {
	return &Config{
		GitHub: GitHub{
			Scope: ScopeRepo,
		},
		Board: Board{
			Status:     "Status",
			Estimate:   "Estimate",
			ProjectKey: "Project KEY",
		},
		Mirror: Mirror{
			Title:       "Name",
			Description: "Description",
			Status:      "Status",
			Assignee:    "Assignee",
			IssueURL:    "GitHub Issue",
			Project:     "Project",
			TaskGroup:   "Task group",
			Estimate:    "Estimate",
		},
		Relations: Relations{
			UserIdentity: "GitHub",
			UserPerson:   "Person",
			ProjectKey:   "Project KEY",
		},
		Policy: Policy{
			ProjectLink:     ProjectLinkFirst,
			RequireProject:  true,
			RequireAssignee: false,
			TaskGroup:       TaskGroupProject,
		},
	}
}

// Load reads a YAML config file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on missing identifiers and unknown policy values,
// before any fetch begins.
func (c *Config) Validate() error {
	if c.GitHub.Owner == "" {
		return fmt.Errorf("github.owner is required")
	}
	if c.GitHub.Repo == "" {
		return fmt.Errorf("github.repo is required")
	}
	switch c.GitHub.Scope {
	case ScopeRepo, ScopeOrg:
	default:
		return fmt.Errorf("github.scope must be %q or %q, got %q", ScopeRepo, ScopeOrg, c.GitHub.Scope)
	}

	if c.Notion.TasksDatabase == "" {
		return fmt.Errorf("notion.tasks_database is required")
	}
	if c.Notion.ProjectsDatabase == "" {
		return fmt.Errorf("notion.projects_database is required")
	}
	if c.Notion.UsersDatabase == "" {
		return fmt.Errorf("notion.users_database is required")
	}

	switch c.Policy.ProjectLink {
	case ProjectLinkFirst, ProjectLinkAll:
	default:
		return fmt.Errorf("policy.project_link must be %q or %q, got %q", ProjectLinkFirst, ProjectLinkAll, c.Policy.ProjectLink)
	}
	switch c.Policy.TaskGroup {
	case TaskGroupProject:
	case TaskGroupFixed:
		if c.Policy.TaskGroupName == "" {
			return fmt.Errorf("policy.task_group_name is required for fixed task group")
		}
	default:
		return fmt.Errorf("policy.task_group must be %q or %q, got %q", TaskGroupProject, TaskGroupFixed, c.Policy.TaskGroup)
	}

	return nil
}
