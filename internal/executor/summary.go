package executor

import (
	"fmt"
	"strings"
)

// Summary aggregates one batch of outcomes.
type Summary struct {
	BatchID   string
	Succeeded int
	Failed    int
	// Errors holds cleaned error text, de-duplicated, first seen first.
	Errors []string
	// APIFailed is set when a remote-state-changing action failed.
	APIFailed bool
	// Refresh is set when a successful action asks for a refetch.
	Refresh bool
}

// Total returns the number of actions in the batch.
func (s Summary) Total() int { return s.Succeeded + s.Failed }

// Fold reduces outcomes into a summary.
func Fold(outcomes []Outcome) Summary {
	var s Summary
	seen := make(map[string]struct{})
	for _, o := range outcomes {
		if o.Err == nil {
			s.Succeeded++
			if o.Refresh {
				s.Refresh = true
			}
			continue
		}
		s.Failed++
		if o.Remote {
			s.APIFailed = true
		}
		msg := CleanErrorMessage(o.Err.Error())
		if _, ok := seen[msg]; !ok {
			seen[msg] = struct{}{}
			s.Errors = append(s.Errors, msg)
		}
	}
	return s
}

// Status returns the status line, whether a corrective refresh should be
// requested, and whether the message should survive data refreshes.
func (s Summary) Status() (msg string, refresh bool, sticky bool) {
	if s.Failed > 0 {
		msg = "Command failed"
		if len(s.Errors) > 0 {
			msg = s.Errors[0]
		}
		if extra := len(s.Errors) - 1; extra > 0 {
			msg = fmt.Sprintf("%s (+%d more)", msg, extra)
		}
		return msg, s.APIFailed || s.Refresh, true
	}
	return fmt.Sprintf("Executed %d actions", s.Succeeded), s.Refresh, false
}

var errorPrefixes = []string{
	"GraphQL error: ",
	"GitHub API error: ",
	"failed to fetch notifications: ",
	"failed to fetch pull requests: ",
	"failed to send mutation: ",
}

// CleanErrorMessage strips transport prefixes, repeatedly, so the status
// line shows the cause.
func CleanErrorMessage(message string) string {
	message = strings.TrimSpace(message)
	for {
		stripped := false
		for _, prefix := range errorPrefixes {
			if strings.HasPrefix(message, prefix) {
				message = strings.TrimSpace(strings.TrimPrefix(message, prefix))
				stripped = true
			}
		}
		if !stripped {
			return message
		}
	}
}
