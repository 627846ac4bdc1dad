package model

import (
	"fmt"
	"sort"
	"time"
)

// ParseUpdatedAt parses an RFC 3339 timestamp. Invalid input yields the
// zero time, which sorts last and never counts as newer than an override.
func ParseUpdatedAt(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatRelative renders the age of t relative to now as Ns, Nm, Nh or Nd.
// Zero times render as "?" and future times as "0s".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "?"
	}
	secs := int64(now.Sub(t) / time.Second)
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh", secs/3600)
	default:
		return fmt.Sprintf("%dd", secs/86400)
	}
}

// SortNotifications orders notifications by UpdatedAt, newest first.
func SortNotifications(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].UpdatedAt.After(ns[j].UpdatedAt)
	})
}

// SortPullRequests orders pull requests by UpdatedAt, newest first.
func SortPullRequests(prs []PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool {
		return prs[i].UpdatedAt.After(prs[j].UpdatedAt)
	})
}
