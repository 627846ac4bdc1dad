package ignore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps one URL per line in a plain text file. Blank lines and
// lines starting with '#' are skipped.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Load reads every entry. A missing file is an empty set.
func (f *FileStore) Load(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) load() ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ignore file %s: %w", f.path, err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file %s: %w", f.path, err)
	}
	return urls, nil
}

// Append adds url to the end of the file unless it is already listed.
func (f *FileStore) Append(ctx context.Context, url string) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, fmt.Errorf("ignore entry must not be empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.load()
	if err != nil {
		return false, err
	}
	for _, u := range existing {
		if u == url {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return false, fmt.Errorf("creating ignore directory: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening ignore file %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, url); err != nil {
		return false, fmt.Errorf("writing ignore file %s: %w", f.path, err)
	}
	return true, nil
}

// Clear truncates the file, keeping comment lines.
func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading ignore file %s: %w", f.path, err)
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			kept = append(kept, line)
		}
	}
	out := strings.Join(kept, "\n")
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(f.path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing ignore file %s: %w", f.path, err)
	}
	return nil
}
