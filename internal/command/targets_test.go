package command

import (
	"reflect"
	"testing"

	"github.com/nhle/ghn/internal/model"
)

func reviewPtr(r model.ReviewStatus) *model.ReviewStatus { return &r }

func sampleNotification(id string, unread bool, subject model.Subject) model.Notification {
	if subject.URL == "" {
		subject.URL = "https://github.com/acme/widgets/pull/" + id
	}
	if subject.Kind == "" {
		subject.Kind = model.KindPullRequest
	}
	return model.Notification{
		ID:         id,
		NodeID:     "node-" + id,
		Unread:     unread,
		Subject:    subject,
		Repository: model.Repository{Name: "widgets", FullName: "acme/widgets"},
		URL:        subject.URL,
	}
}

func samplePR(id string, subject model.Subject) model.PullRequest {
	subject.Kind = model.KindPullRequest
	if subject.URL == "" {
		subject.URL = "https://github.com/acme/gadgets/pull/" + id
	}
	return model.PullRequest{
		ID:         id,
		Subject:    subject,
		Repository: model.Repository{Name: "gadgets", FullName: "acme/gadgets"},
		URL:        subject.URL,
	}
}

func TestBuildTargets(t *testing.T) {
	ns := []model.Notification{
		sampleNotification("1", true, model.Subject{Review: reviewPtr(model.ReviewRequired)}),
		sampleNotification("2", false, model.Subject{Statuses: []model.SubjectStatus{model.StatusMerged}, Review: reviewPtr(model.ReviewRequired)}),
		sampleNotification("3", true, model.Subject{Statuses: []model.SubjectStatus{model.StatusDraft, model.StatusClosed}}),
	}
	prs := []model.PullRequest{
		samplePR("10", model.Subject{Review: reviewPtr(model.ReviewApproved)}),
		samplePR("11", model.Subject{Review: reviewPtr(model.ReviewChangesRequested), Statuses: []model.SubjectStatus{model.StatusDraft}}),
	}

	got := BuildTargets(ns, prs)
	want := Targets{
		'u': {1, 3},
		'?': {1},
		'm': {2},
		'f': {3, 5},
		'c': {3},
		'a': {4},
		'x': {5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildTargets() = %v, want %v", got, want)
	}
}

func TestBuildUnreadDoneEndToEnd(t *testing.T) {
	ns := []model.Notification{
		sampleNotification("1", true, model.Subject{}),
		sampleNotification("2", false, model.Subject{}),
		sampleNotification("3", true, model.Subject{}),
		sampleNotification("4", false, model.Subject{}),
		sampleNotification("5", true, model.Subject{}),
	}

	got := Build("u d", ns, nil)
	want := Pending{
		1: {model.ActionDone},
		3: {model.ActionDone},
		5: {model.ActionDone},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build(\"u d\") = %v, want %v", got, want)
	}
}
