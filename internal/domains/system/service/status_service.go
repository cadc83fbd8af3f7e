// Package service aggregates the health of the external components the admin
// backend depends on: Redis cache, object storage and Supabase Vault.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	ComponentCache   = "cache"
	ComponentStorage = "storage"
	ComponentVault   = "vault"

	DefaultCheckTimeout = 3 * time.Second
)

var ErrUnknownComponent = errors.New("unknown status component")

// Checker probes one component. Details are optional and shown as-is.
type Checker interface {
	Name() string
	Check(ctx context.Context) (map[string]interface{}, error)
}

type checkerFunc struct {
	name string
	fn   func(ctx context.Context) (map[string]interface{}, error)
}

func (c checkerFunc) Name() string { return c.name }

func (c checkerFunc) Check(ctx context.Context) (map[string]interface{}, error) {
	return c.fn(ctx)
}

// NewChecker wraps fn as a Checker. A nil fn reports the component as not configured.
func NewChecker(name string, fn func(ctx context.Context) (map[string]interface{}, error)) Checker {
	if fn == nil {
		fn = func(context.Context) (map[string]interface{}, error) {
			return nil, fmt.Errorf("%s is not configured", name)
		}
	}
	return checkerFunc{name: name, fn: fn}
}

type ComponentStatus struct {
	Name      string                 `json:"name"`
	Healthy   bool                   `json:"healthy"`
	LatencyMS int64                  `json:"latency_ms"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CheckedAt time.Time              `json:"checked_at"`
}

type AggregateStatus struct {
	Healthy    bool              `json:"healthy"`
	Components []ComponentStatus `json:"components"`
	CheckedAt  time.Time         `json:"checked_at"`
}

type StatusService struct {
	checkers []Checker
	timeout  time.Duration
	now      func() time.Time
}

func NewStatusService(timeout time.Duration, checkers ...Checker) *StatusService {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &StatusService{
		checkers: checkers,
		timeout:  timeout,
		now:      time.Now,
	}
}

// run never returns an error: failures and timeouts become an unhealthy status.
func (s *StatusService) run(ctx context.Context, checker Checker) ComponentStatus {
	checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := s.now()
	type result struct {
		details map[string]interface{}
		err     error
	}
	done := make(chan result, 1)
	go func() {
		details, err := checker.Check(checkCtx)
		done <- result{details: details, err: err}
	}()

	status := ComponentStatus{Name: checker.Name()}
	select {
	case res := <-done:
		status.Details = res.details
		if res.err != nil {
			status.Message = res.err.Error()
		} else {
			status.Healthy = true
		}
	case <-checkCtx.Done():
		status.Message = fmt.Sprintf("check timed out after %s", s.timeout)
	}

	status.CheckedAt = s.now().UTC()
	status.LatencyMS = status.CheckedAt.Sub(start.UTC()).Milliseconds()
	return status
}

// Check runs a single named component.
func (s *StatusService) Check(ctx context.Context, name string) (*ComponentStatus, error) {
	for _, checker := range s.checkers {
		if checker.Name() == name {
			status := s.run(ctx, checker)
			return &status, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownComponent)
}

// CheckAll fans out to every component concurrently. Healthy is the AND of all components.
func (s *StatusService) CheckAll(ctx context.Context) *AggregateStatus {
	results := make([]ComponentStatus, len(s.checkers))

	var g errgroup.Group
	for i, checker := range s.checkers {
		g.Go(func() error {
			results[i] = s.run(ctx, checker)
			return nil
		})
	}
	_ = g.Wait()

	healthy := true
	for _, r := range results {
		healthy = healthy && r.Healthy
	}

	return &AggregateStatus{
		Healthy:    healthy,
		Components: results,
		CheckedAt:  s.now().UTC(),
	}
}
