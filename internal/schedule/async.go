package schedule

import (
	"context"

	"github.com/strrl/mentorlink/pkg/models"
)

// Result carries the outcome of an asynchronous load
type Result struct {
	Sessions []models.Session
	Error    error
}

// LoadAsync runs Load on a goroutine. The channel receives at most one
// result and is closed afterwards; nothing is sent once ctx is cancelled.
func (s Source) LoadAsync(ctx context.Context) <-chan Result {
	resultChan := make(chan Result, 1)

	go func() {
		defer close(resultChan)

		sessions, err := s.Load(ctx)
		if ctx.Err() != nil {
			return
		}

		select {
		case resultChan <- Result{Sessions: sessions, Error: err}:
		case <-ctx.Done():
		}
	}()

	return resultChan
}

// Await blocks until the asynchronous load finishes or ctx is done
func (s Source) Await(ctx context.Context) ([]models.Session, error) {
	select {
	case result, ok := <-s.LoadAsync(ctx):
		if !ok {
			return nil, ctx.Err()
		}
		return result.Sessions, result.Error
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
