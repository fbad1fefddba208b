package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const (
	tableLLMEvents = "llm_request_events"

	colID           = "id"
	colEventID      = "event_id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
)

// llmEventColumns is the column order used by scanLLMEvent.
var llmEventColumns = []string{
	colID, colEventID, colSequence, colTimestamp,
	colProvider, colModel, colPurpose,
	colInputTokens, colOutputTokens, colLatencyMs,
	colSuccess, colErrorMessage, colRequestBody, colResponseBody,
}

// eventRepo implements EventRepo backed by SQLite and the sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLLMEvents).
		Columns(
			colEventID, colSequence, colTimestamp,
			colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs,
			colSuccess, colErrorMessage, colRequestBody, colResponseBody,
		).
		Values(
			uuid.NewString(), seqNum, time.Now().UTC().UnixMilli(),
			data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs,
			data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	b := builder()
	t := b.Table(tableLLMEvents)

	cols := make([]string, len(llmEventColumns))
	for i, c := range llmEventColumns {
		cols[i] = t.C(c)
	}
	sel := b.Select(cols...).From(t)

	var preds []*entsql.Predicate
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ(t.C(colPurpose), opts.Purpose))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT(t.C(colSequence), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(t.C(colSequence), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C(colTimestamp), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(t.C(colTimestamp), opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	sel.OrderBy(entsql.Desc(t.C(colSequence)))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	b := builder()
	t := b.Table(tableLLMEvents)

	cols := make([]string, len(llmEventColumns))
	for i, c := range llmEventColumns {
		cols[i] = t.C(c)
	}
	query, args := b.Select(cols...).
		From(t).
		Where(entsql.EQ(t.C(colID), id)).
		Query()

	e, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	b := builder()
	t := b.Table(tableLLMEvents)

	query, args := b.Select(
		t.C(colPurpose),
		entsql.Count("*"),
		entsql.Sum(t.C(colInputTokens)),
		entsql.Sum(t.C(colOutputTokens)),
		entsql.Avg(t.C(colLatencyMs)),
	).
		From(t).
		GroupBy(t.C(colPurpose)).
		OrderBy(t.C(colPurpose)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := builder()
	t := b.Table(tableLLMEvents)

	query, args := b.Select(
		t.C(colModel),
		entsql.Count("*"),
		entsql.Sum(t.C(colInputTokens)),
		entsql.Sum(t.C(colOutputTokens)),
	).
		From(t).
		Where(entsql.EQ(t.C(colSuccess), true)).
		GroupBy(t.C(colModel)).
		OrderBy(t.C(colModel)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var e LLMEvent
	var ts int64
	err := row.Scan(
		&e.ID, &e.EventID, &e.Sequence, &ts,
		&e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp = time.UnixMilli(ts).UTC()
	return &e, nil
}
