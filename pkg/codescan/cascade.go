package codescan

import "context"

// ProgressFunc receives the id of each deleted analysis as the deletion
// completes, so partial progress stays visible if a later step fails.
type ProgressFunc func(id int64)

// RunCascade deletes every deletable analysis in the repository, optionally
// scoped to one ref. Deleting an analysis can reveal exactly one
// newly-deletable successor in the same retention chain; the cascade follows
// those pointers until none remains.
//
// The pending set is an explicit last-in-first-out stack seeded with every
// currently deletable record from the initial listing. Stack depth is
// bounded by the listing plus one in-flight chain pointer, never by the call
// stack. Returns the number of analyses deleted; a failed deletion aborts
// the cascade for this repository with whatever count was reached.
func RunCascade(ctx context.Context, client RemoteClient, repo *Repo, ref string, report ProgressFunc) (int, error) {
	analyses, err := repo.Analyses(ctx, ref)
	if err != nil {
		return 0, err
	}

	stack := make([]Analysis, 0, len(analyses))
	for _, a := range analyses {
		if a.Deletable {
			stack = append(stack, a)
		}
	}

	deleted := 0
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		resp, err := client.DeleteAnalysis(ctx, repo.Owner, repo.Name, next.ID)
		if err != nil {
			return deleted, WrapError(ErrorTypeDelete, err, repo.FullName())
		}

		deleted++
		if report != nil {
			report(next.ID)
		}

		if resp != nil && resp.NextAnalysisID != 0 {
			stack = append(stack, Analysis{ID: resp.NextAnalysisID, Deletable: true})
		}
	}

	return deleted, nil
}
