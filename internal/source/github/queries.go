package github

const repositoryFields = `
      name
      nameWithOwner
      isArchived
      mergeCommitAllowed
      squashMergeAllowed
      rebaseMergeAllowed
      autoMergeAllowed
      viewerDefaultMergeMethod`

const headCommitFields = `
    commits(last: 1) {
      nodes {
        commit {
          statusCheckRollup {
            state
          }
        }
      }
    }`

const notificationsQuery = `
query GetNotifications($statuses: [NotificationStatus!]) {
  viewer {
    login
    notificationThreads(first: 50, filterBy: { statuses: $statuses }) {
      nodes {
        id
        threadId
        title
        url
        isUnread
        lastUpdatedAt
        reason
        optionalSubject {
          ... on Issue { id state }
          ... on PullRequest {
            id
            state
            isDraft
            reviewDecision
            headRefName
            repository {` + repositoryFields + `
            }` + headCommitFields + `
          }
          ... on Discussion { id }
          ... on Commit { id }
        }
      }
    }
  }
}`

const myPullRequestsQuery = `
query GetMyPullRequests($query: String!) {
  search(query: $query, type: ISSUE, first: 50) {
    nodes {
      ... on PullRequest {
        id
        title
        url
        updatedAt
        isDraft
        reviewDecision
        headRefName
        repository {` + repositoryFields + `
        }` + headCommitFields + `
      }
    }
  }
}`

const markReadMutation = `
mutation MarkAsRead($id: ID!) {
  markNotificationAsRead(input: { id: $id }) { success }
}`

const markDoneMutation = `
mutation MarkAsDone($id: ID!) {
  markNotificationAsDone(input: { id: $id }) { success }
}`

const unsubscribeMutation = `
mutation Unsubscribe($ids: [ID!]!) {
  unsubscribeFromNotifications(input: { ids: $ids }) { success }
}`
