// Package ignore tracks pull requests the viewer has dismissed from the
// feed. Set is the in-memory view owned by the UI loop; Store persists it.
package ignore

import (
	"context"
	"sort"
)

// Store persists ignored pull request URLs.
type Store interface {
	// Load returns every ignored URL.
	Load(ctx context.Context) ([]string, error)

	// Append records url. It returns false when url was already present.
	Append(ctx context.Context, url string) (bool, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// Set is an unsynchronized URL set. Only the UI loop mutates it.
type Set struct {
	urls map[string]struct{}
}

// NewSet returns a set holding urls.
func NewSet(urls ...string) *Set {
	s := &Set{urls: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		s.urls[u] = struct{}{}
	}
	return s
}

// Contains reports whether url is ignored.
func (s *Set) Contains(url string) bool {
	_, ok := s.urls[url]
	return ok
}

// Add inserts url and reports whether it was new.
func (s *Set) Add(url string) bool {
	if s.Contains(url) {
		return false
	}
	s.urls[url] = struct{}{}
	return true
}

// Len returns the number of ignored URLs.
func (s *Set) Len() int { return len(s.urls) }

// URLs returns the members in sorted order.
func (s *Set) URLs() []string {
	out := make([]string, 0, len(s.urls))
	for u := range s.urls {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}
