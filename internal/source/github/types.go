package github

import "encoding/json"

// Response is the GraphQL response envelope.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Error is one entry of a GraphQL errors array.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NotificationsData is the data payload of notificationsQuery.
type NotificationsData struct {
	Viewer struct {
		Login               string `json:"login"`
		NotificationThreads struct {
			Nodes []NotificationThread `json:"nodes"`
		} `json:"notificationThreads"`
	} `json:"viewer"`
}

// NotificationThread is a notification thread node.
type NotificationThread struct {
	ID              string           `json:"id"`
	ThreadID        string           `json:"threadId"`
	Title           string           `json:"title"`
	URL             string           `json:"url"`
	IsUnread        bool             `json:"isUnread"`
	LastUpdatedAt   string           `json:"lastUpdatedAt"`
	Reason          *string          `json:"reason"`
	OptionalSubject *OptionalSubject `json:"optionalSubject"`
}

// OptionalSubject is the union of subject fragments. GitHub returns an
// empty object for subjects that match none of them (releases).
type OptionalSubject struct {
	ID             string      `json:"id"`
	State          string      `json:"state"`
	IsDraft        bool        `json:"isDraft"`
	ReviewDecision string      `json:"reviewDecision"`
	HeadRefName    string      `json:"headRefName"`
	Repository     *Repository `json:"repository"`
	Commits        *Commits    `json:"commits"`
}

// Repository carries the fields needed for display and merge settings.
type Repository struct {
	Name                     string `json:"name"`
	NameWithOwner            string `json:"nameWithOwner"`
	IsArchived               bool   `json:"isArchived"`
	MergeCommitAllowed       bool   `json:"mergeCommitAllowed"`
	SquashMergeAllowed       bool   `json:"squashMergeAllowed"`
	RebaseMergeAllowed       bool   `json:"rebaseMergeAllowed"`
	AutoMergeAllowed         bool   `json:"autoMergeAllowed"`
	ViewerDefaultMergeMethod string `json:"viewerDefaultMergeMethod"`
}

// Commits holds the last commit of a pull request.
type Commits struct {
	Nodes []struct {
		Commit *struct {
			StatusCheckRollup *struct {
				State string `json:"state"`
			} `json:"statusCheckRollup"`
		} `json:"commit"`
	} `json:"nodes"`
}

// RollupState returns the check rollup state of the last commit, or "".
func (c *Commits) RollupState() string {
	if c == nil || len(c.Nodes) == 0 {
		return ""
	}
	last := c.Nodes[len(c.Nodes)-1]
	if last.Commit == nil || last.Commit.StatusCheckRollup == nil {
		return ""
	}
	return last.Commit.StatusCheckRollup.State
}

// SearchData is the data payload of myPullRequestsQuery. Nodes that are
// not pull requests decode as nil.
type SearchData struct {
	Search struct {
		Nodes []*PullRequest `json:"nodes"`
	} `json:"search"`
}

// PullRequest is a search result node.
type PullRequest struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	UpdatedAt      string     `json:"updatedAt"`
	IsDraft        bool       `json:"isDraft"`
	ReviewDecision string     `json:"reviewDecision"`
	HeadRefName    string     `json:"headRefName"`
	Repository     Repository `json:"repository"`
	Commits        *Commits   `json:"commits"`
}
