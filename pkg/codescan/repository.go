package codescan

import (
	"context"
	"fmt"
	"strings"
)

// Repo identifies one repository and lazily exposes its metadata. The
// default branch and language inventory are fetched on first use and cached
// for the lifetime of the handle; they are assumed not to change during a
// single invocation.
type Repo struct {
	Owner string
	Name  string

	client RemoteClient

	branchFetched bool
	defaultBranch string
	langsFetched  bool
	languages     map[string]int64
}

// ParseRepo constructs a repository handle from an "owner/name" spec. A
// spec that does not split on exactly one separator is a hard input error.
func ParseRepo(spec string, client RemoteClient) (*Repo, error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, NewScanError(ErrorTypeBadRepoSpec,
			fmt.Sprintf("invalid repository %q: expected owner/name", spec), nil)
	}
	return &Repo{Owner: parts[0], Name: parts[1], client: client}, nil
}

// ParseRepos constructs handles for every spec, failing on the first
// malformed one so no work starts against a partially-valid argument list.
func ParseRepos(specs []string, client RemoteClient) ([]*Repo, error) {
	repos := make([]*Repo, 0, len(specs))
	for _, spec := range specs {
		repo, err := ParseRepo(spec, client)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// FullName returns the owner/name form of the repository.
func (r *Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// DefaultBranch returns the repository's default branch, querying the
// collaborator on first call and caching the result.
func (r *Repo) DefaultBranch(ctx context.Context) (string, error) {
	if r.branchFetched {
		return r.defaultBranch, nil
	}

	meta, err := r.client.RepoMetadata(ctx, r.Owner, r.Name)
	if err != nil {
		return "", WrapError(ErrorTypeQuery, err, r.FullName())
	}

	r.defaultBranch = meta.DefaultBranch
	r.branchFetched = true
	return r.defaultBranch, nil
}

// Languages returns the repository's language inventory as a mapping from
// language name to byte count, querying the collaborator on first call and
// caching the result.
func (r *Repo) Languages(ctx context.Context) (map[string]int64, error) {
	if r.langsFetched {
		return r.languages, nil
	}

	langs, err := r.client.RepoLanguages(ctx, r.Owner, r.Name)
	if err != nil {
		return nil, WrapError(ErrorTypeQuery, err, r.FullName())
	}
	if langs == nil {
		langs = make(map[string]int64)
	}

	r.languages = langs
	r.langsFetched = true
	return r.languages, nil
}

// Analyses lists the repository's analyses, optionally scoped to one ref.
// The collaborator's paginated raw output is decoded as a multi-document
// stream; an empty or absent result is an empty slice, not an error.
// Records outside the ref filter never appear in the result even if the
// collaborator over-returns.
func (r *Repo) Analyses(ctx context.Context, ref string) ([]Analysis, error) {
	raw, err := r.client.ListAnalyses(ctx, r.Owner, r.Name, ref)
	if err != nil {
		return nil, WrapError(ErrorTypeList, err, r.FullName())
	}

	analyses, err := DecodeAnalyses(raw)
	if err != nil {
		return nil, WrapError(ErrorTypeDecode, err, r.FullName())
	}

	if ref == "" {
		return analyses, nil
	}
	filtered := make([]Analysis, 0, len(analyses))
	for _, a := range analyses {
		if matchesRef(a.Ref, ref) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Alerts lists the repository's code-scanning alerts. An empty or absent
// result is an empty slice, not an error.
func (r *Repo) Alerts(ctx context.Context) ([]Alert, error) {
	raw, err := r.client.ListAlerts(ctx, r.Owner, r.Name)
	if err != nil {
		return nil, WrapError(ErrorTypeList, err, r.FullName())
	}

	alerts, err := DecodeAlerts(raw)
	if err != nil {
		return nil, WrapError(ErrorTypeDecode, err, r.FullName())
	}
	return alerts, nil
}

// matchesRef accepts both short branch names and fully-qualified refs.
func matchesRef(recordRef, filter string) bool {
	return recordRef == filter || recordRef == "refs/heads/"+filter
}
