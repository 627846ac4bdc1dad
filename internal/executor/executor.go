// Package executor runs a submitted command line against the remote
// service and the local machine, one goroutine per (entry, action), and
// folds the outcomes into a single summary.
package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/nhle/ghn/internal/command"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/source"
)

// Launcher performs the local, blocking side effects.
type Launcher interface {
	OpenURL(url string) error
	Copy(text string) error
	Checkout(repoFullName, url string) error
}

// Recorder persists outcomes after a batch completes.
type Recorder interface {
	RecordOutcomes(ctx context.Context, batchID string, outcomes []Outcome) error
}

// Outcome is the result of one (entry, action) unit of work.
type Outcome struct {
	Index  int
	Action model.Action
	Kind   model.EntryKind
	URL    string
	// Remote is set when the action changes server-side state.
	Remote bool
	Err    error
	// Refresh asks for a follow-up fetch even on success.
	Refresh bool

	seq int
}

// Executor dispatches actions. Mutator, Launcher and Ignores must be set;
// Recorder is optional.
type Executor struct {
	Mutator  source.Mutator
	Launcher Launcher
	Ignores  ignore.Store
	Recorder Recorder
}

type job struct {
	seq    int
	index  int
	action model.Action
	entry  model.Entry
}

// Run executes pending against immutable snapshots of both lists. It
// blocks until every unit of work finishes; no failure cancels another.
func (e *Executor) Run(
	ctx context.Context,
	pending command.Pending,
	notifications []model.Notification,
	prs []model.PullRequest,
) Summary {
	batchID := ulid.Make().String()

	var jobs []job
	for idx, actions := range pending {
		entry, ok := model.EntryAt(idx, notifications, prs)
		if !ok {
			continue
		}
		for _, a := range actions {
			jobs = append(jobs, job{seq: len(jobs), index: idx, action: a, entry: entry})
		}
	}

	p := pool.NewWithResults[Outcome]()
	for _, j := range jobs {
		p.Go(func() Outcome {
			return e.runGuarded(ctx, j)
		})
	}
	outcomes := p.Wait()

	sort.Slice(outcomes, func(i, k int) bool {
		if outcomes[i].Index != outcomes[k].Index {
			return outcomes[i].Index < outcomes[k].Index
		}
		return outcomes[i].seq < outcomes[k].seq
	})

	summary := Fold(outcomes)
	summary.BatchID = batchID

	for _, o := range outcomes {
		if o.Err != nil {
			log.Warn("action failed",
				"batch", batchID, "index", o.Index, "action", o.Action, "url", o.URL, "err", o.Err)
		}
	}
	if e.Recorder != nil && len(outcomes) > 0 {
		if err := e.Recorder.RecordOutcomes(ctx, batchID, outcomes); err != nil {
			log.Error("recording outcomes", "batch", batchID, "err", err)
		}
	}
	return summary
}

// runGuarded turns a panicking unit of work into a failed remote outcome.
func (e *Executor) runGuarded(ctx context.Context, j job) (out Outcome) {
	out = Outcome{
		Index:  j.index,
		Action: j.action,
		Kind:   j.entry.Kind,
		URL:    j.entry.URL(),
		Remote: isRemote(j.entry.Kind, j.action),
		seq:    j.seq,
	}
	defer func() {
		if r := recover(); r != nil {
			out.Remote = true
			out.Err = fmt.Errorf("action %s aborted: %v", j.action, r)
		}
	}()
	out.Err = e.execute(ctx, j.entry, j.action)
	return out
}

func (e *Executor) execute(ctx context.Context, entry model.Entry, action model.Action) error {
	switch action {
	case model.ActionOpen:
		if err := e.Launcher.OpenURL(entry.URL()); err != nil {
			return err
		}
		if entry.Kind == model.EntryNotification && entry.Notification.Unread {
			return e.Mutator.MarkRead(ctx, entry.Notification.NodeID)
		}
		return nil

	case model.ActionYank:
		return e.Launcher.Copy(entry.URL())

	case model.ActionPrettyCopy:
		return e.Launcher.Copy(PrettyLink(entry))

	case model.ActionRead:
		if entry.Kind != model.EntryNotification {
			return fmt.Errorf("read is not supported for pull requests")
		}
		return e.Mutator.MarkRead(ctx, entry.Notification.NodeID)

	case model.ActionDone:
		if entry.Kind != model.EntryNotification {
			return fmt.Errorf("done is not supported for pull requests")
		}
		return e.Mutator.MarkDone(ctx, entry.Notification.NodeID)

	case model.ActionUnsubscribe:
		if entry.Kind == model.EntryPullRequest {
			_, err := e.Ignores.Append(ctx, entry.URL())
			return err
		}
		n := entry.Notification
		if n.SubjectID != "" {
			if err := e.Mutator.Unsubscribe(ctx, n.SubjectID); err != nil {
				return err
			}
		}
		return e.Mutator.MarkDone(ctx, n.NodeID)

	case model.ActionBranch:
		return e.Launcher.Checkout(entry.Repository().FullName, entry.URL())

	case model.ActionReview:
		return fmt.Errorf("review runs in the foreground, not in the background executor")

	default:
		return fmt.Errorf("unknown action %q", action.Rune())
	}
}

// isRemote classifies whether a failure leaves the optimistic view out of
// step with the server.
func isRemote(kind model.EntryKind, action model.Action) bool {
	if kind != model.EntryNotification {
		return false
	}
	switch action {
	case model.ActionOpen, model.ActionRead, model.ActionDone, model.ActionUnsubscribe:
		return true
	}
	return false
}

// PrettyLink renders "[owner/repo#N] title <url>" for sharing.
func PrettyLink(entry model.Entry) string {
	subject := entry.Subject()
	ref := entry.Repository().FullName
	url := entry.URL()
	if i := strings.LastIndex(url, "/"); i >= 0 && i < len(url)-1 {
		ref += "#" + url[i+1:]
	}
	return fmt.Sprintf("[%s] %s <%s>", ref, subject.Title, url)
}
