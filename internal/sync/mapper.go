package sync

import (
	"github.com/jomei/notionapi"

	"github.com/naag/gh-notion-sync/internal/config"
	"github.com/naag/gh-notion-sync/internal/github"
)

// Relations are the read-only identity lookup tables of one run.
type Relations struct {
	// Users maps GitHub handles to Notion user IDs
	Users map[string]string
	// Projects maps project keys to Notion page IDs
	Projects map[string]string
}

// BuildTargetProperties computes the desired mirror state for one issue.
// matched must be the issue's project items in project-number-ascending
// order. The result is fully determined by its inputs: unmatched assignees
// and unresolved project keys degrade to absent values, and the estimate
// property is omitted entirely unless a matched project supplies a positive
// number.
func BuildTargetProperties(cfg *config.Config, issue github.Issue, matched []github.ProjectItem, relations Relations) notionapi.Properties {
	properties := notionapi.Properties{
		cfg.Mirror.Title: &notionapi.TitleProperty{
			Title: textRuns(issue.Title),
		},
		cfg.Mirror.Description: &notionapi.RichTextProperty{
			RichText: textRuns(issue.Body),
		},
		cfg.Mirror.Status: &notionapi.StatusProperty{
			Status: notionapi.Option{Name: DeriveStatus(issue, boardStatuses(cfg, matched))},
		},
		cfg.Mirror.Assignee: &notionapi.PeopleProperty{
			People: mapAssignees(issue.Assignees, relations.Users),
		},
		cfg.Mirror.IssueURL: &notionapi.URLProperty{
			URL: issue.URL,
		},
	}

	if link := projectLink(cfg, matched, relations.Projects); len(link) > 0 {
		properties[cfg.Mirror.Project] = &notionapi.RelationProperty{Relation: link}
	}

	if group := taskGroup(cfg, matched); group != "" {
		properties[cfg.Mirror.TaskGroup] = &notionapi.SelectProperty{
			Select: notionapi.Option{Name: group},
		}
	}

	if estimate, ok := maxEstimate(cfg, matched); ok {
		properties[cfg.Mirror.Estimate] = &notionapi.NumberProperty{Number: estimate}
	}

	return properties
}

func textRuns(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: content}},
	}
}

func boardStatuses(cfg *config.Config, matched []github.ProjectItem) []string {
	statuses := make([]string, 0, len(matched))
	for _, item := range matched {
		statuses = append(statuses, item.TextField(cfg.Board.Status))
	}
	return statuses
}

// mapAssignees maps handles through the user relation. Unmatched handles are
// dropped, not errors: not every GitHub account has a mirror counterpart.
func mapAssignees(handles []string, users map[string]string) []notionapi.User {
	people := make([]notionapi.User, 0, len(handles))
	for _, handle := range handles {
		if id, ok := users[handle]; ok {
			people = append(people, notionapi.User{ID: notionapi.UserID(id)})
		}
	}
	return people
}

// projectLink resolves the matched projects' key fields through the project
// relation. Policy decides whether only the first match or all matches are
// linked; keys that resolve to nothing are dropped.
func projectLink(cfg *config.Config, matched []github.ProjectItem, projects map[string]string) []notionapi.Relation {
	var relations []notionapi.Relation
	seen := make(map[string]bool)
	for _, item := range matched {
		key := item.TextField(cfg.Board.ProjectKey)
		if key == "" {
			continue
		}
		id, ok := projects[key]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		relations = append(relations, notionapi.Relation{ID: notionapi.PageID(id)})
		if cfg.Policy.ProjectLink == config.ProjectLinkFirst {
			break
		}
	}
	return relations
}

func taskGroup(cfg *config.Config, matched []github.ProjectItem) string {
	if cfg.Policy.TaskGroup == config.TaskGroupFixed {
		return cfg.Policy.TaskGroupName
	}
	if len(matched) > 0 {
		return matched[0].ProjectTitle
	}
	return ""
}

// maxEstimate aggregates the estimate field across matched projects. Only
// positive values count; the second return is false when no project supplies
// one, so the caller can omit the property instead of writing zero.
func maxEstimate(cfg *config.Config, matched []github.ProjectItem) (float64, bool) {
	var best float64
	found := false
	for _, item := range matched {
		n := item.NumberField(cfg.Board.Estimate)
		if n == nil || *n <= 0 {
			continue
		}
		if !found || *n > best {
			best = *n
		}
		found = true
	}
	return best, found
}
