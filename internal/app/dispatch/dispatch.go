// Package dispatch issues one mutation per row concurrently and waits for all of them.
package dispatch

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Failure records a row whose mutation was rejected.
type Failure struct {
	ID  uint   `json:"id"`
	Err string `json:"error"`
}

// Report lists what already committed and what did not.
type Report struct {
	Succeeded []uint    `json:"succeeded"`
	Failed    []Failure `json:"failed"`
}

// All runs fn for every item in its own goroutine with no concurrency limit
// and waits for every call to return. A failing call does not cancel the
// others, and calls that already succeeded are not rolled back. The returned
// error is the first failure observed, wrapped with its row id.
func All[T any](ctx context.Context, items []T, idOf func(T) uint, fn func(context.Context, T) error) (Report, error) {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		report = Report{Succeeded: []uint{}, Failed: []Failure{}}
	)

	for _, item := range items {
		g.Go(func() error {
			id := idOf(item)
			err := fn(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, Failure{ID: id, Err: err.Error()})
				return fmt.Errorf("update %d: %w", id, err)
			}
			report.Succeeded = append(report.Succeeded, id)
			return nil
		})
	}

	err := g.Wait()
	slices.Sort(report.Succeeded)
	slices.SortFunc(report.Failed, func(a, b Failure) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return report, err
}
