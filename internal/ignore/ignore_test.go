package ignore

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func TestSetAdd(t *testing.T) {
	s := NewSet("https://github.com/a/b/pull/1")
	if s.Add("https://github.com/a/b/pull/1") {
		t.Error("Add existing = true, want false")
	}
	if !s.Add("https://github.com/a/b/pull/2") {
		t.Error("Add new = false, want true")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("https://github.com/a/b/pull/2") {
		t.Error("Contains added url = false")
	}
}

func TestFileStoreLoadSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignores.txt")
	content := "# dismissed\n\n  https://github.com/a/b/pull/1  \n#https://github.com/a/b/pull/9\nhttps://github.com/a/b/pull/2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://github.com/a/b/pull/1", "https://github.com/a/b/pull/2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %v, want %v", got, want)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	got, err := NewFileStore(filepath.Join(t.TempDir(), "none.txt")).Load(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("Load() = (%v, %v), want empty", got, err)
	}
}

func TestFileStoreAppend(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "ignores.txt"))

	added, err := store.Append(ctx, "https://github.com/a/b/pull/1")
	if err != nil || !added {
		t.Fatalf("Append first = (%v, %v), want (true, nil)", added, err)
	}
	added, err = store.Append(ctx, "https://github.com/a/b/pull/1")
	if err != nil || added {
		t.Fatalf("Append duplicate = (%v, %v), want (false, nil)", added, err)
	}

	got, _ := store.Load(ctx)
	if len(got) != 1 {
		t.Errorf("Load() = %v, want one entry", got)
	}
}

func TestFileStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "ignores.txt"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Append(ctx, "https://github.com/a/b/pull/7")
		}()
	}
	wg.Wait()

	got, _ := store.Load(ctx)
	if len(got) != 1 {
		t.Errorf("Load() = %v, want exactly one entry", got)
	}
}

func TestFileStoreClearKeepsComments(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ignores.txt")
	if err := os.WriteFile(path, []byte("# header\nhttps://x/pull/1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# header\n" {
		t.Errorf("file = %q, want %q", data, "# header\n")
	}
}
