package executor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/model"
)

type call struct {
	op  string
	arg string
}

type fakeMutator struct {
	mu    sync.Mutex
	calls []call
	fail  map[string]error
}

func (f *fakeMutator) record(op, arg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op, arg})
	return f.fail[op]
}

func (f *fakeMutator) MarkRead(_ context.Context, id string) error    { return f.record("read", id) }
func (f *fakeMutator) MarkDone(_ context.Context, id string) error    { return f.record("done", id) }
func (f *fakeMutator) Unsubscribe(_ context.Context, id string) error { return f.record("unsub", id) }

func (f *fakeMutator) ops() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}

type fakeLauncher struct {
	mu        sync.Mutex
	opened    []string
	copied    []string
	checkouts []string
	openErr   error
	panicOn   string
}

func (f *fakeLauncher) OpenURL(url string) error {
	if f.panicOn == "open" {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.openErr
}

func (f *fakeLauncher) Copy(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copied = append(f.copied, text)
	return nil
}

func (f *fakeLauncher) Checkout(repo, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkouts = append(f.checkouts, repo+" "+url)
	return nil
}

type fakeRecorder struct {
	batch    string
	outcomes []Outcome
}

func (f *fakeRecorder) RecordOutcomes(_ context.Context, batchID string, outcomes []Outcome) error {
	f.batch = batchID
	f.outcomes = outcomes
	return nil
}

func fixtures() ([]model.Notification, []model.PullRequest) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := model.Repository{Name: "ghn", FullName: "nhle/ghn"}
	ns := []model.Notification{
		{
			ID: "t1", NodeID: "N1", SubjectID: "S1", Unread: true, UpdatedAt: now,
			Subject:    model.Subject{Title: "Fix poller", URL: "https://github.com/nhle/ghn/pull/7", Kind: model.KindPullRequest},
			Repository: repo, URL: "https://github.com/nhle/ghn/pull/7",
		},
		{
			ID: "t2", NodeID: "N2", Unread: false, UpdatedAt: now,
			Subject:    model.Subject{Title: "Crash on start", URL: "https://github.com/nhle/ghn/issues/3", Kind: model.KindIssue},
			Repository: repo, URL: "https://github.com/nhle/ghn/issues/3",
		},
	}
	prs := []model.PullRequest{
		{
			ID: "P1", UpdatedAt: now,
			Subject:    model.Subject{Title: "Add history", URL: "https://github.com/nhle/ghn/pull/9", Kind: model.KindPullRequest},
			Repository: repo, URL: "https://github.com/nhle/ghn/pull/9",
		},
	}
	return ns, prs
}

func newExecutor(t *testing.T) (*Executor, *fakeMutator, *fakeLauncher, *ignore.FileStore) {
	t.Helper()
	m := &fakeMutator{fail: map[string]error{}}
	l := &fakeLauncher{}
	store := ignore.NewFileStore(filepath.Join(t.TempDir(), "ignored"))
	return &Executor{Mutator: m, Launcher: l, Ignores: store}, m, l, store
}

func TestRunDispatch(t *testing.T) {
	ns, prs := fixtures()
	exec, m, l, store := newExecutor(t)

	summary := exec.Run(context.Background(), command.Pending{
		1: {model.ActionOpen, model.ActionYank},
		2: {model.ActionDone},
		3: {model.ActionPrettyCopy, model.ActionBranch, model.ActionUnsubscribe},
	}, ns, prs)

	if summary.Succeeded != 6 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 6 succeeded", summary)
	}
	if summary.BatchID == "" {
		t.Error("batch id not set")
	}

	ops := map[call]bool{}
	for _, c := range m.ops() {
		ops[c] = true
	}
	for _, want := range []call{{"read", "N1"}, {"done", "N2"}} {
		if !ops[want] {
			t.Errorf("missing remote call %+v in %+v", want, m.ops())
		}
	}
	if len(m.ops()) != 2 {
		t.Errorf("remote calls = %+v, want 2", m.ops())
	}

	if len(l.opened) != 1 || l.opened[0] != ns[0].URL {
		t.Errorf("opened = %v", l.opened)
	}
	if len(l.checkouts) != 1 || l.checkouts[0] != "nhle/ghn "+prs[0].URL {
		t.Errorf("checkouts = %v", l.checkouts)
	}
	copied := strings.Join(l.copied, "\n")
	if !strings.Contains(copied, ns[0].URL) {
		t.Errorf("yank missing from %q", copied)
	}
	if !strings.Contains(copied, "[nhle/ghn#9] Add history <https://github.com/nhle/ghn/pull/9>") {
		t.Errorf("pretty copy missing from %q", copied)
	}

	ignored, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ignored) != 1 || ignored[0] != prs[0].URL {
		t.Errorf("ignored = %v", ignored)
	}
}

func TestOpenReadNotificationSkipsMarkRead(t *testing.T) {
	ns, prs := fixtures()
	exec, m, _, _ := newExecutor(t)

	exec.Run(context.Background(), command.Pending{2: {model.ActionOpen}}, ns, prs)
	if len(m.ops()) != 0 {
		t.Errorf("remote calls = %+v, want none", m.ops())
	}
}

func TestUnsubscribeNotification(t *testing.T) {
	ns, prs := fixtures()
	exec, m, _, _ := newExecutor(t)

	exec.Run(context.Background(), command.Pending{1: {model.ActionUnsubscribe}}, ns, prs)
	got := m.ops()
	want := []call{{"unsub", "S1"}, {"done", "N1"}}
	if len(got) != len(want) {
		t.Fatalf("calls = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnsubscribeWithoutSubjectOnlyMarksDone(t *testing.T) {
	ns, prs := fixtures()
	exec, m, _, _ := newExecutor(t)

	exec.Run(context.Background(), command.Pending{2: {model.ActionUnsubscribe}}, ns, prs)
	got := m.ops()
	if len(got) != 1 || got[0] != (call{"done", "N2"}) {
		t.Errorf("calls = %+v", got)
	}
}

func TestRemoteFailureFlagsAPI(t *testing.T) {
	ns, prs := fixtures()
	exec, m, _, _ := newExecutor(t)
	m.fail["done"] = errors.New("GraphQL error: Resource not accessible")

	summary := exec.Run(context.Background(), command.Pending{
		1: {model.ActionDone},
		2: {model.ActionDone},
		3: {model.ActionYank},
	}, ns, prs)

	if summary.Failed != 2 || summary.Succeeded != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if !summary.APIFailed {
		t.Error("APIFailed not set")
	}
	if len(summary.Errors) != 1 || summary.Errors[0] != "Resource not accessible" {
		t.Errorf("errors = %v", summary.Errors)
	}
	msg, refresh, sticky := summary.Status()
	if msg != "Resource not accessible" || !refresh || !sticky {
		t.Errorf("status = %q %v %v", msg, refresh, sticky)
	}
}

func TestLocalFailureDoesNotFlagAPI(t *testing.T) {
	ns, prs := fixtures()
	exec, _, l, _ := newExecutor(t)
	l.openErr = errors.New("no browser")

	summary := exec.Run(context.Background(), command.Pending{3: {model.ActionOpen}}, ns, prs)
	if summary.Failed != 1 || summary.APIFailed {
		t.Errorf("summary = %+v", summary)
	}
	_, refresh, _ := summary.Status()
	if refresh {
		t.Error("local failure should not request refresh")
	}
}

func TestPanicCountsAsRemoteFailure(t *testing.T) {
	ns, prs := fixtures()
	exec, _, l, _ := newExecutor(t)
	l.panicOn = "open"

	summary := exec.Run(context.Background(), command.Pending{
		3: {model.ActionOpen},
		1: {model.ActionYank},
	}, ns, prs)
	if summary.Failed != 1 || summary.Succeeded != 1 || !summary.APIFailed {
		t.Errorf("summary = %+v", summary)
	}
}

func TestReviewIsRejected(t *testing.T) {
	ns, prs := fixtures()
	exec, _, _, _ := newExecutor(t)

	summary := exec.Run(context.Background(), command.Pending{3: {model.ActionReview}}, ns, prs)
	if summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestOutOfRangeIndexSkipped(t *testing.T) {
	ns, prs := fixtures()
	exec, _, _, _ := newExecutor(t)

	summary := exec.Run(context.Background(), command.Pending{9: {model.ActionYank}}, ns, prs)
	if summary.Total() != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRecorderReceivesSortedOutcomes(t *testing.T) {
	ns, prs := fixtures()
	exec, _, _, _ := newExecutor(t)
	rec := &fakeRecorder{}
	exec.Recorder = rec

	summary := exec.Run(context.Background(), command.Pending{
		3: {model.ActionYank},
		1: {model.ActionYank, model.ActionRead},
	}, ns, prs)

	if rec.batch != summary.BatchID {
		t.Errorf("batch = %q, want %q", rec.batch, summary.BatchID)
	}
	if len(rec.outcomes) != 3 {
		t.Fatalf("outcomes = %+v", rec.outcomes)
	}
	wantIdx := []int{1, 1, 3}
	wantAct := []model.Action{model.ActionYank, model.ActionRead, model.ActionYank}
	for i, o := range rec.outcomes {
		if o.Index != wantIdx[i] || o.Action != wantAct[i] {
			t.Errorf("outcome[%d] = %d %s, want %d %s", i, o.Index, o.Action, wantIdx[i], wantAct[i])
		}
	}
	if !rec.outcomes[1].Remote || rec.outcomes[0].Remote {
		t.Error("remote classification wrong")
	}
}
