package sync

import (
	"strings"

	"github.com/naag/gh-notion-sync/internal/github"
)

// Normalized status values written to the mirror
const (
	StatusDone        = "Done"
	StatusBlocked     = "Blocked"
	StatusDuplicate   = "Duplicate"
	StatusToBeChecked = "To be checked"
	StatusInProgress  = "In progress"
	StatusNotStarted  = "Not started"
)

// Board status values with a dedicated mapping
const (
	boardStatusInReview   = "In review"
	boardStatusInProgress = "In progress"
)

// DeriveStatus maps an issue and the statuses of its project board items to
// a single normalized status. Precedence, first match wins: lifecycle and
// hygiene labels override board status, since the board can lag reality.
func DeriveStatus(issue github.Issue, projectStatuses []string) string {
	if issue.Closed() {
		return StatusDone
	}
	if issue.HasLabel("blocked") {
		return StatusBlocked
	}
	if issue.HasLabel("duplicate") {
		return StatusDuplicate
	}
	for _, status := range projectStatuses {
		if strings.EqualFold(status, boardStatusInReview) {
			return StatusToBeChecked
		}
	}
	for _, status := range projectStatuses {
		if strings.EqualFold(status, boardStatusInProgress) {
			return StatusInProgress
		}
	}
	for _, status := range projectStatuses {
		if status != "" {
			return status
		}
	}
	return StatusNotStarted
}
