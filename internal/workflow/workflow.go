package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/nullable"
)

// TransactionService is the slice of the API client the workflow depends on.
type TransactionService interface {
	GetTransaction(ctx context.Context, creds escrow.Credentials, id string) (*escrow.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error)
}

// Workflow submits status changes and keeps a local snapshot of each tracked
// transaction. There is no optimistic update: the snapshot only ever reflects
// a status the server confirmed. Rapid updates to the same transaction are
// sequenced so a superseded request's late response cannot overwrite a newer
// confirmed state.
type Workflow struct {
	svc TransactionService
	log zerolog.Logger

	mu        sync.Mutex
	snapshots map[string]escrow.Transaction
	submitted map[string]uint64
	applied   map[string]uint64
}

// New creates a workflow backed by svc.
func New(svc TransactionService, log zerolog.Logger) *Workflow {
	return &Workflow{
		svc:       svc,
		log:       log,
		snapshots: make(map[string]escrow.Transaction),
		submitted: make(map[string]uint64),
		applied:   make(map[string]uint64),
	}
}

// Track stores a server-confirmed transaction snapshot, typically right after
// a fetch or create.
func (w *Workflow) Track(txn escrow.Transaction) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshots[txn.ID] = cloneTransaction(txn)
}

// Get returns the tracked snapshot for a transaction id, if any.
func (w *Workflow) Get(id string) (escrow.Transaction, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	txn, ok := w.snapshots[id]
	return cloneTransaction(txn), ok
}

// cloneTransaction copies a transaction including its attribute slice, so
// snapshots never share a backing array with caller-held values.
func cloneTransaction(txn escrow.Transaction) escrow.Transaction {
	if txn.Attributes != nil {
		attrs := make([]escrow.TransactionAttribute, len(txn.Attributes))
		copy(attrs, txn.Attributes)
		txn.Attributes = attrs
	}
	return txn
}

// Load fetches a transaction from the server and tracks it.
func (w *Workflow) Load(ctx context.Context, creds escrow.Credentials, id string) (*escrow.Transaction, error) {
	txn, err := w.svc.GetTransaction(ctx, creds, id)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	w.Track(*txn)
	return txn, nil
}

// UpdateStatus submits a new status for a transaction. On success the tracked
// snapshot is replaced with the server's record, unless a later submission for
// the same transaction has already been applied, in which case the stale
// response is discarded. On failure the snapshot is left untouched and the
// error propagates unchanged.
func (w *Workflow) UpdateStatus(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error) {
	w.mu.Lock()
	w.submitted[id]++
	seq := w.submitted[id]
	w.mu.Unlock()

	txn, err := w.svc.UpdateTransactionStatus(ctx, creds, id, status)
	if err != nil {
		return nil, fmt.Errorf("UpdateStatus: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq < w.applied[id] {
		w.log.Debug().
			Str("transaction_id", id).
			Str("status", status).
			Msg("discarding superseded status response")
		current := cloneTransaction(w.snapshots[id])
		return &current, nil
	}
	w.applied[id] = seq

	// Some backends return the record without echoing the new status; patch
	// it in so the snapshot always carries the confirmed value.
	if !txn.Status.Present {
		txn.Status = nullable.FromString(status)
	}
	w.snapshots[id] = cloneTransaction(*txn)
	return txn, nil
}
