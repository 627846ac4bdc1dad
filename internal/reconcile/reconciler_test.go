package reconcile

import (
	"testing"
	"time"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/model"
)

var (
	t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func notif(id string, unread bool, updated time.Time) model.Notification {
	url := "https://github.com/acme/widgets/issues/" + id
	return model.Notification{
		ID:        id,
		NodeID:    "node-" + id,
		Unread:    unread,
		UpdatedAt: updated,
		Subject:   model.Subject{Title: "t" + id, URL: url, Kind: model.KindIssue},
		URL:       url,
	}
}

func pull(id string, updated time.Time) model.PullRequest {
	url := "https://github.com/acme/widgets/pull/" + id
	return model.PullRequest{
		ID:        id,
		UpdatedAt: updated,
		Subject:   model.Subject{Title: "pr" + id, URL: url, Kind: model.KindPullRequest},
		URL:       url,
	}
}

func newState(includeRead bool, now time.Time) *State {
	s := New(includeRead, ignore.NewSet())
	s.now = func() time.Time { return now }
	return s
}

func ids(ns []model.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestApplyOpenMarksReadAndRemovesInUnreadView(t *testing.T) {
	s := newState(false, t1)
	s.SetData([]model.Notification{notif("1", true, t0)}, nil)

	s.Apply(command.Pending{1: {model.ActionOpen}})

	if len(s.Notifications) != 0 {
		t.Fatalf("Notifications = %v, want removed", ids(s.Notifications))
	}
	if got := s.Ledger["1"].State; got != OverrideRead {
		t.Errorf("ledger state = %v, want read", got)
	}
}

func TestApplyOpenKeepsInAllView(t *testing.T) {
	s := newState(true, t1)
	s.SetData([]model.Notification{notif("1", true, t0)}, nil)

	s.Apply(command.Pending{1: {model.ActionOpen}})

	if len(s.Notifications) != 1 || s.Notifications[0].Unread {
		t.Fatalf("Notifications = %+v, want one read notification", s.Notifications)
	}
}

func TestApplyDoneRecordsSuppress(t *testing.T) {
	s := newState(true, t1)
	s.SetData([]model.Notification{notif("1", true, t0), notif("2", true, t0)}, nil)

	s.Apply(command.Pending{2: {model.ActionDone}})

	if got := ids(s.Notifications); len(got) != 1 || got[0] != "1" {
		t.Fatalf("Notifications = %v, want [1]", got)
	}
	o := s.Ledger["2"]
	if o.State != OverrideSuppress || !o.RecordedAt.Equal(t1) {
		t.Errorf("ledger = %+v, want suppress at %v", o, t1)
	}
}

func TestSuppressDominatesRead(t *testing.T) {
	for _, order := range [][]model.Action{
		{model.ActionRead, model.ActionDone},
		{model.ActionDone, model.ActionRead},
		{model.ActionOpen, model.ActionUnsubscribe, model.ActionOpen},
	} {
		s := newState(true, t1)
		s.SetData([]model.Notification{notif("1", true, t0)}, nil)
		s.Apply(command.Pending{1: order})
		if got := s.Ledger["1"].State; got != OverrideSuppress {
			t.Errorf("actions %v: ledger = %v, want suppress", order, got)
		}
	}
}

func TestLedgerRecordAcrossUpdates(t *testing.T) {
	l := make(Ledger)
	l.Record("1", OverrideSuppress, t0)
	l.Record("1", OverrideRead, t1)
	if o := l["1"]; o.State != OverrideSuppress || !o.RecordedAt.Equal(t1) {
		t.Errorf("ledger = %+v, want suppress at %v", o, t1)
	}
}

func TestMergeSuppressUntilNewActivity(t *testing.T) {
	s := newState(true, t1)
	s.SetData([]model.Notification{notif("1", true, t0)}, nil)
	s.Apply(command.Pending{1: {model.ActionDone}})

	s.SetData([]model.Notification{notif("1", true, t0)}, nil)
	if len(s.Notifications) != 0 {
		t.Fatalf("stale refresh revived notification: %v", ids(s.Notifications))
	}
	s.SetData([]model.Notification{notif("1", true, t1)}, nil)
	if len(s.Notifications) != 0 {
		t.Fatalf("refresh at same second revived notification: %v", ids(s.Notifications))
	}

	s.SetData([]model.Notification{notif("1", true, t2)}, nil)
	if len(s.Notifications) != 1 || !s.Notifications[0].Unread {
		t.Fatalf("new activity should surface the notification unread, got %+v", s.Notifications)
	}
	if _, ok := s.Ledger["1"]; ok {
		t.Error("stale override should be removed from the ledger")
	}
}

func TestMergeReadOverrideOnStaleFetch(t *testing.T) {
	s := newState(false, t1)
	s.SetData([]model.Notification{notif("1", true, t0)}, nil)
	s.Apply(command.Pending{1: {model.ActionRead}})

	s.SetData([]model.Notification{notif("1", true, t0)}, nil)
	if len(s.Notifications) != 0 {
		t.Fatalf("read notification reappeared in unread view: %v", ids(s.Notifications))
	}
	if _, ok := s.Ledger["1"]; !ok {
		t.Error("read override should survive a stale fetch")
	}
}

func TestMergeReadOverrideClearedOnNewActivity(t *testing.T) {
	s := newState(false, t1)
	s.SetData([]model.Notification{notif("1", true, t0)}, nil)
	s.Apply(command.Pending{1: {model.ActionRead}})

	s.SetData([]model.Notification{notif("1", true, t2)}, nil)
	if len(s.Notifications) != 1 || !s.Notifications[0].Unread {
		t.Fatalf("Notifications = %+v, want one unread", s.Notifications)
	}
}

func TestMergeReadOverrideInAllView(t *testing.T) {
	ledger := Ledger{"1": {State: OverrideRead, RecordedAt: t1}}

	got := Merge([]model.Notification{notif("1", true, t0)}, ledger, true)
	if len(got) != 1 || got[0].Unread {
		t.Fatalf("Merge() = %+v, want one read notification", got)
	}
	if _, ok := ledger["1"]; !ok {
		t.Fatal("override dropped before the server agreed")
	}

	got = Merge([]model.Notification{notif("1", false, t0)}, ledger, true)
	if len(got) != 1 {
		t.Fatalf("Merge() = %+v, want one notification", got)
	}
	if _, ok := ledger["1"]; ok {
		t.Error("override should be dropped once the server reports read")
	}
}

func TestMergePassesThroughUnknown(t *testing.T) {
	got := Merge([]model.Notification{notif("1", true, t0)}, Ledger{}, false)
	if len(got) != 1 || !got[0].Unread {
		t.Fatalf("Merge() = %+v", got)
	}
}

func TestApplyUnsubscribeIgnoresPullRequest(t *testing.T) {
	s := newState(false, t1)
	s.SetData(nil, []model.PullRequest{pull("9", t0)})

	s.Apply(command.Pending{1: {model.ActionUnsubscribe}})

	if len(s.PullRequests) != 0 {
		t.Fatal("pull request should be removed")
	}
	if !s.Ignored.Contains("https://github.com/acme/widgets/pull/9") {
		t.Error("pull request url should be in the ignore set")
	}
	if len(s.Ledger) != 0 {
		t.Errorf("ledger = %v, want no entries for pull requests", s.Ledger)
	}

	s.SetData(nil, []model.PullRequest{pull("9", t2)})
	if len(s.PullRequests) != 0 {
		t.Error("ignored pull request came back on refresh")
	}
}

func TestApplyUnreadDoneEndToEnd(t *testing.T) {
	s := newState(false, t1)
	ns := []model.Notification{
		notif("1", true, t0.Add(5*time.Minute)),
		notif("2", true, t0.Add(4*time.Minute)),
		notif("3", true, t0.Add(3*time.Minute)),
		notif("4", true, t0.Add(2*time.Minute)),
		notif("5", true, t0.Add(1*time.Minute)),
	}
	ns[1].Unread = false
	ns[3].Unread = false
	s.IncludeRead = true
	s.SetData(ns, nil)
	s.IncludeRead = false

	pending := command.Build("u d", s.Notifications, s.PullRequests)
	if len(pending) != 3 {
		t.Fatalf("pending = %v, want 3 targets", pending)
	}
	s.Apply(pending)

	if got := ids(s.Notifications); len(got) != 2 || got[0] != "2" || got[1] != "4" {
		t.Errorf("Notifications = %v, want [2 4]", got)
	}
}

func TestApplyMixedRemovalsKeepOrder(t *testing.T) {
	s := newState(true, t1)
	s.SetData(
		[]model.Notification{
			notif("a", true, t0.Add(3*time.Second)),
			notif("b", true, t0.Add(2*time.Second)),
			notif("c", true, t0.Add(1*time.Second)),
		},
		[]model.PullRequest{pull("p", t0), pull("q", t0.Add(-time.Second))},
	)

	s.Apply(command.Pending{
		1: {model.ActionDone},
		3: {model.ActionDone},
		5: {model.ActionUnsubscribe},
		2: {model.ActionYank},
	})

	if got := ids(s.Notifications); len(got) != 1 || got[0] != "b" {
		t.Errorf("Notifications = %v, want [b]", got)
	}
	if len(s.PullRequests) != 1 || s.PullRequests[0].ID != "p" {
		t.Errorf("PullRequests = %+v, want [p]", s.PullRequests)
	}
}

func TestSetDataSortsAndFiltersIgnored(t *testing.T) {
	s := New(false, ignore.NewSet("https://github.com/acme/widgets/pull/2"))
	s.SetData(
		[]model.Notification{notif("old", true, t0), notif("new", true, t2)},
		[]model.PullRequest{pull("1", t0), pull("2", t2), pull("3", t1)},
	)

	if got := ids(s.Notifications); got[0] != "new" || got[1] != "old" {
		t.Errorf("Notifications = %v, want [new old]", got)
	}
	if len(s.PullRequests) != 2 || s.PullRequests[0].ID != "3" || s.PullRequests[1].ID != "1" {
		t.Errorf("PullRequests = %+v, want [3 1]", s.PullRequests)
	}
}
