package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
)

// SimpleFunc is for RunInParallel.
type SimpleFunc func(ctx context.Context) error

// RunInParallel runs all functions in parallel, return is elapsed time and an error.
// The first failure cancels the context handed to the rest.
func RunInParallel(ctx context.Context, fs []SimpleFunc) (time.Duration, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	var bigError error
	var bigErrorMutex sync.Mutex
	storeError := func(err error) {
		bigErrorMutex.Lock()
		defer bigErrorMutex.Unlock()
		if bigError == nil || !errors.Is(err, context.Canceled) {
			bigError = multierr.Combine(bigError, err)
		}
	}

	helper := func(f SimpleFunc) {
		defer func() {
			if thePanic := recover(); thePanic != nil {
				storeError(fmt.Errorf("got panic running something in parallel: %v", thePanic))
				cancel()
			}
			wg.Done()
		}()
		if err := f(ctx); err != nil {
			storeError(err)
			cancel()
		}
	}

	for _, f := range fs {
		wg.Add(1)
		go helper(f)
	}

	wg.Wait()
	return time.Since(start), bigError
}

// MapInParallel applies f to every input in parallel and returns the results in input order.
func MapInParallel[In, Out any](ctx context.Context, inputs []In, f func(ctx context.Context, in In) (Out, error)) ([]Out, error) {
	results := make([]Out, len(inputs))
	fs := make([]SimpleFunc, 0, len(inputs))
	for i, in := range inputs {
		fs = append(fs, func(ctx context.Context) error {
			out, err := f(ctx, in)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if _, err := RunInParallel(ctx, fs); err != nil {
		return nil, err
	}
	return results, nil
}
