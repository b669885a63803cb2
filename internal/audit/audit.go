// Package audit writes request_history/openai_history rows: one row per
// façade call, captured for post-hoc diagnosis and latency reporting.
// New for this repo (the teacher has no request-audit concern), but its
// Repository-wraps-*sql.DB idiom and parameterized-query style are
// grounded on internal/cacherepo, and writes are dispatched through
// internal/jobs so a slow insert never blocks the caller's response.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/mediavault/identifier/internal/jobs"
)

// RequestRecord is one request_history row. ID is a google/uuid value
// generated by the façade so it can be threaded through logs and the
// websocket broadcast before the row is ever written.
type RequestRecord struct {
	ID            string
	Endpoint      string
	Filename      string
	RequesterIP   string
	ResultStatus  string
	ResultMediaID string
	ReceivedAt    time.Time
	RespondedAt   time.Time
	ErrorMessage  string
	ElapsedTime   float64
}

// OpenAIRecord is one openai_history row, tied to the RequestRecord that
// triggered the LLM call.
type OpenAIRecord struct {
	RequestID       string
	InputTokens     int
	CachedTokens    int
	OutputTokens    int
	ReasoningTokens int
	TotalTokens     int
}

// Repository persists audit rows directly, grounded on cacherepo.Repository's
// wraps-*sql.DB shape. Writer (below) is the enqueue-then-write path most
// callers should use instead.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) InsertRequest(rec RequestRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO request_history
			(id, endpoint, filename, requester_ip, result_status, result_media_id,
			 received_at, responded_at, error_message, elapsed_time)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Endpoint, nullableString(rec.Filename), nullableString(rec.RequesterIP),
		rec.ResultStatus, nullableString(rec.ResultMediaID), rec.ReceivedAt,
		nullableTime(rec.RespondedAt), nullableString(rec.ErrorMessage), rec.ElapsedTime,
	)
	if err != nil {
		return fmt.Errorf("audit: insert request_history: %w", err)
	}
	return nil
}

func (r *Repository) InsertOpenAI(rec OpenAIRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO openai_history
			(request_id, input_tokens, cached_tokens, output_tokens, reasoning_tokens, total_tokens)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		rec.RequestID, rec.InputTokens, rec.CachedTokens, rec.OutputTokens,
		rec.ReasoningTokens, rec.TotalTokens,
	)
	if err != nil {
		return fmt.Errorf("audit: insert openai_history: %w", err)
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// Writer enqueues audit writes onto internal/jobs instead of blocking the
// caller on a Postgres round-trip.
type Writer struct {
	queue *jobs.Queue
}

func NewWriter(queue *jobs.Queue) *Writer {
	return &Writer{queue: queue}
}

// NewRequestID mints a fresh per-request identifier, grounded on
// SPEC_FULL.md's assignment of google/uuid to per-request correlation.
func NewRequestID() string {
	return uuid.NewString()
}

// EnqueueRequest enqueues the request_history write keyed on rec.ID, so a
// caller that retries the same request (the façade's basename retry, or a
// client-side retry after a timeout) never produces two rows for the same
// request.
func (w *Writer) EnqueueRequest(rec RequestRecord) error {
	if _, err := w.queue.EnqueueUnique(jobs.TaskAuditRequest, rec, rec.ID, asynq.Queue("default")); err != nil {
		return fmt.Errorf("audit: enqueue request_history write: %w", err)
	}
	return nil
}

// EnqueueOpenAI enqueues the openai_history write keyed on the owning
// request's ID, for the same reason EnqueueRequest is.
func (w *Writer) EnqueueOpenAI(rec OpenAIRecord) error {
	if _, err := w.queue.EnqueueUnique(jobs.TaskAuditOpenAI, rec, rec.RequestID+":openai", asynq.Queue("default")); err != nil {
		return fmt.Errorf("audit: enqueue openai_history write: %w", err)
	}
	return nil
}

// RegisterHandlers wires the two audit task types into queue's worker
// mux, decoding each payload and writing it through repo.
func RegisterHandlers(queue *jobs.Queue, repo *Repository) {
	queue.RegisterHandler(jobs.TaskAuditRequest, asyncHandlerFunc(func(payload []byte) error {
		var rec RequestRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("audit: decode request_history payload: %w", err)
		}
		return repo.InsertRequest(rec)
	}))
	queue.RegisterHandler(jobs.TaskAuditOpenAI, asyncHandlerFunc(func(payload []byte) error {
		var rec OpenAIRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return fmt.Errorf("audit: decode openai_history payload: %w", err)
		}
		return repo.InsertOpenAI(rec)
	}))
}
