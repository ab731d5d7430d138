// Package sync reconciles GitHub issue and project state into the Notion
// mirror.
package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naag/gh-notion-sync/internal/config"
	"github.com/naag/gh-notion-sync/internal/github"
	"github.com/naag/gh-notion-sync/internal/notion"
)

// Outcome is the terminal result of reconciling one issue
type Outcome string

const (
	OutcomeCreated           Outcome = "created"
	OutcomeUpdated           Outcome = "updated"
	OutcomeSkippedNoProject  Outcome = "skipped-no-project"
	OutcomeSkippedNoAssignee Outcome = "skipped-no-assignee"
	OutcomeSkippedUnchanged  Outcome = "skipped-unchanged"
	OutcomeSkippedClosedNew  Outcome = "skipped-closed-new"
)

// Service reconciles upstream issue state into the mirror store
type Service struct {
	github github.Client
	notion notion.Client
	cfg    *config.Config
}

// NewService creates a new sync service
func NewService(githubClient github.Client, notionClient notion.Client, cfg *config.Config) *Service {
	return &Service{github: githubClient, notion: notionClient, cfg: cfg}
}

// Run performs one full reconciliation: fetch issues, project data, existing
// mirror records and relation tables, then decide create/update/skip per
// issue. Fetch failures abort the run; per-issue write failures are logged
// and surfaced as one aggregate error at the end, so one bad record does not
// block the rest.
func (s *Service) Run(ctx context.Context) error {
	issues, err := s.github.FetchIssues(ctx, s.cfg.GitHub.Owner, s.cfg.GitHub.Repo)
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	items, err := s.github.FetchProjectData(ctx, s.projectScope())
	if err != nil {
		return fmt.Errorf("failed to fetch project data: %w", err)
	}

	records, err := notion.FetchExistingRecords(ctx, s.notion, s.cfg.Notion.TasksDatabase, s.cfg.Mirror.IssueURL)
	if err != nil {
		return err
	}

	users, err := notion.ResolveUsers(ctx, s.notion, s.cfg.Notion.UsersDatabase, s.cfg.Relations.UserIdentity, s.cfg.Relations.UserPerson)
	if err != nil {
		return err
	}

	projects, err := notion.ResolveProjects(ctx, s.notion, s.cfg.Notion.ProjectsDatabase, s.cfg.Relations.ProjectKey)
	if err != nil {
		return err
	}

	relations := Relations{Users: users, Projects: projects}
	counts := make(map[Outcome]int)
	failed := 0

	for _, issue := range issues {
		outcome, err := s.reconcileIssue(ctx, issue, items, records, relations)
		if err != nil {
			slog.Error("failed to reconcile issue", "issue", issue.URL, "error", err)
			failed++
			continue
		}
		slog.Info("reconciled issue", "issue", issue.URL, "outcome", string(outcome))
		counts[outcome]++
	}

	slog.Info("run completed",
		"issues", len(issues),
		"created", counts[OutcomeCreated],
		"updated", counts[OutcomeUpdated],
		"skipped", counts[OutcomeSkippedNoProject]+counts[OutcomeSkippedNoAssignee]+counts[OutcomeSkippedUnchanged]+counts[OutcomeSkippedClosedNew],
		"failed", failed,
	)

	if failed > 0 {
		return fmt.Errorf("one or more issues failed to reconcile")
	}
	return nil
}

func (s *Service) projectScope() github.Scope {
	if s.cfg.GitHub.Scope == config.ScopeOrg {
		return github.Scope{Type: github.ScopeOrg, Owner: s.cfg.GitHub.Owner}
	}
	return github.Scope{Type: github.ScopeRepo, Owner: s.cfg.GitHub.Owner, Repo: s.cfg.GitHub.Repo}
}

func (s *Service) reconcileIssue(ctx context.Context, issue github.Issue, items []github.ProjectItem, records map[string]notion.Record, relations Relations) (Outcome, error) {
	matched := github.MatchItems(items, issue.ID)

	if s.cfg.Policy.RequireProject && len(matched) == 0 {
		return OutcomeSkippedNoProject, nil
	}
	if s.cfg.Policy.RequireAssignee && len(issue.Assignees) == 0 {
		return OutcomeSkippedNoAssignee, nil
	}

	target := BuildTargetProperties(s.cfg, issue, matched, relations)

	if record, ok := records[issue.URL]; ok {
		if !NeedsWrite(record.Properties, target) {
			return OutcomeSkippedUnchanged, nil
		}
		if _, err := s.notion.UpdatePage(ctx, record.ID, target); err != nil {
			return "", fmt.Errorf("failed to update record %s: %w", record.ID, err)
		}
		return OutcomeUpdated, nil
	}

	// Issues that closed before ever being tracked never get a record.
	if issue.Closed() {
		return OutcomeSkippedClosedNew, nil
	}

	if _, err := s.notion.CreatePage(ctx, s.cfg.Notion.TasksDatabase, target); err != nil {
		return "", fmt.Errorf("failed to create record: %w", err)
	}
	return OutcomeCreated, nil
}
