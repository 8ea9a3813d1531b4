// Package codescan implements batch code-scanning operations over GitHub
// repositories. It can enroll repositories into scheduled CodeQL scanning,
// list open code-scanning alerts, and list or bulk-delete historical
// analyses.
//
// The package includes:
// - RemoteClient interface for the gh-backed code-scanning API collaborator
// - Repo handle with memoized repository metadata
// - Multi-document decoding of paginated API output
// - Deletion cascade over server-linked analysis chains
// - Language matrix and workflow generation for enrollment
package codescan
