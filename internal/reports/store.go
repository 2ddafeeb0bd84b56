// Package reports keeps a JSON summary of every intake run in redis so the
// latest outcome of each command can be looked up after the fact.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Run kinds.
const (
	KindScore    = "score"
	KindIngest   = "ingest"
	KindTransfer = "transfer"
)

var Kinds = []string{KindScore, KindIngest, KindTransfer}

var ErrNotFound = errors.New("reports: no report")

type Report struct {
	RunID      string         `json:"runId"`
	Kind       string         `json:"kind"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Message    string         `json:"message"`
	Counts     map[string]int `json:"counts"`
	// Detail is the operation's own result, e.g. an intake.IngestResult.
	Detail json.RawMessage `json:"detail,omitempty"`
}

// NewReport starts a report with a fresh run ID.
func NewReport(kind string, startedAt time.Time) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Kind:      kind,
		StartedAt: startedAt.UTC(),
		Counts:    map[string]int{},
	}
}

// SetDetail stores v as the report detail.
func (r *Report) SetDetail(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report detail: %w", err)
	}
	r.Detail = data
	return nil
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore keeps reports for ttl; zero keeps them forever.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func runKey(kind, runID string) string {
	return fmt.Sprintf("intake:report:%s:%s", kind, runID)
}

func latestKey(kind string) string {
	return fmt.Sprintf("intake:report:%s:latest", kind)
}

// Save writes the report under its run ID and as the latest of its kind.
func (s *Store) Save(ctx context.Context, r *Report) error {
	if r.RunID == "" || r.Kind == "" {
		return fmt.Errorf("report needs a run ID and kind")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, runKey(r.Kind, r.RunID), data, s.ttl)
		pipe.Set(ctx, latestKey(r.Kind), data, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.RunID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind, runID string) (*Report, error) {
	return s.load(ctx, runKey(kind, runID))
}

func (s *Store) Latest(ctx context.Context, kind string) (*Report, error) {
	return s.load(ctx, latestKey(kind))
}

func (s *Store) load(ctx context.Context, key string) (*Report, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", key, err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", key, err)
	}
	return &r, nil
}
