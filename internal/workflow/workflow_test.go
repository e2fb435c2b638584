package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emagn/escrow-client/internal/escrow"
	"github.com/emagn/escrow-client/internal/logger"
	"github.com/emagn/escrow-client/internal/nullable"
)

// mockTransactionService is a func-field mock of TransactionService.
type mockTransactionService struct {
	GetTransactionFunc          func(ctx context.Context, creds escrow.Credentials, id string) (*escrow.Transaction, error)
	UpdateTransactionStatusFunc func(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, creds escrow.Credentials, id string) (*escrow.Transaction, error) {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, creds, id)
	}
	return &escrow.Transaction{ID: id}, nil
}

func (m *mockTransactionService) UpdateTransactionStatus(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error) {
	if m.UpdateTransactionStatusFunc != nil {
		return m.UpdateTransactionStatusFunc(ctx, creds, id, status)
	}
	return &escrow.Transaction{ID: id, Status: nullable.FromString(status)}, nil
}

var _ TransactionService = (*mockTransactionService)(nil)

func TestUpdateStatus_ReplacesSnapshotOnSuccess(t *testing.T) {
	svc := &mockTransactionService{}
	w := New(svc, logger.Nop())

	w.Track(escrow.Transaction{ID: "txn-1", Status: nullable.FromString(StatusPending)})

	updated, err := w.UpdateStatus(context.Background(), escrow.Credentials{Token: "t"}, "txn-1", StatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got := updated.Status.Get(); got != StatusShipped {
		t.Errorf("returned status = %q, want %q", got, StatusShipped)
	}

	snapshot, ok := w.Get("txn-1")
	if !ok {
		t.Fatal("snapshot missing after update")
	}
	if got := snapshot.Status.Get(); got != StatusShipped {
		t.Errorf("snapshot status = %q, want %q", got, StatusShipped)
	}
}

func TestUpdateStatus_FailureLeavesSnapshotUntouched(t *testing.T) {
	svc := &mockTransactionService{
		UpdateTransactionStatusFunc: func(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error) {
			return nil, &escrow.ServerError{Status: 422, Message: "invalid status"}
		},
	}
	w := New(svc, logger.Nop())

	w.Track(escrow.Transaction{ID: "txn-1", Status: nullable.FromString(StatusPending)})

	_, err := w.UpdateStatus(context.Background(), escrow.Credentials{}, "txn-1", "Bogus")
	if err == nil {
		t.Fatal("UpdateStatus should have failed")
	}
	var serverErr *escrow.ServerError
	if !errors.As(err, &serverErr) {
		t.Errorf("error = %v, want a ServerError", err)
	}

	snapshot, _ := w.Get("txn-1")
	if got := snapshot.Status.Get(); got != StatusPending {
		t.Errorf("snapshot status after failed update = %q, want %q", got, StatusPending)
	}
}

func TestUpdateStatus_StaleResponseIsDiscarded(t *testing.T) {
	// Simulate two rapid submissions resolving out of order: the second
	// submission's response lands first, then the first submission's late
	// response must not overwrite it.
	release := make(chan struct{})
	svc := &mockTransactionService{
		UpdateTransactionStatusFunc: func(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error) {
			if status == StatusShipped {
				<-release // hold the first request until the second resolves
			}
			return &escrow.Transaction{ID: id, Status: nullable.FromString(status)}, nil
		},
	}
	w := New(svc, logger.Nop())
	w.Track(escrow.Transaction{ID: "txn-1", Status: nullable.FromString(StatusPending)})

	ctx := context.Background()
	firstDone := make(chan *escrow.Transaction, 1)
	go func() {
		txn, err := w.UpdateStatus(ctx, escrow.Credentials{}, "txn-1", StatusShipped)
		if err != nil {
			t.Errorf("first UpdateStatus failed: %v", err)
		}
		firstDone <- txn
	}()

	// Make sure the first submission is in flight before issuing the second,
	// so the sequence numbers reflect submission order.
	for {
		w.mu.Lock()
		inFlight := w.submitted["txn-1"] == 1
		w.mu.Unlock()
		if inFlight {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := w.UpdateStatus(ctx, escrow.Credentials{}, "txn-1", StatusDelivered); err != nil {
		t.Fatalf("second UpdateStatus failed: %v", err)
	}

	close(release)
	got := <-firstDone

	// The first (superseded) call reports the newer confirmed state.
	if status := got.Status.Get(); status != StatusDelivered {
		t.Errorf("superseded call returned %q, want the newer %q", status, StatusDelivered)
	}

	snapshot, _ := w.Get("txn-1")
	if status := snapshot.Status.Get(); status != StatusDelivered {
		t.Errorf("snapshot = %q, want the newer confirmed %q", status, StatusDelivered)
	}
}

func TestUpdateStatus_PatchesMissingEchoedStatus(t *testing.T) {
	svc := &mockTransactionService{
		UpdateTransactionStatusFunc: func(ctx context.Context, creds escrow.Credentials, id, status string) (*escrow.Transaction, error) {
			// Server omits status from the response body.
			return &escrow.Transaction{ID: id}, nil
		},
	}
	w := New(svc, logger.Nop())

	updated, err := w.UpdateStatus(context.Background(), escrow.Credentials{}, "txn-1", StatusClosed)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got := updated.Status.Get(); got != StatusClosed {
		t.Errorf("status = %q, want %q", got, StatusClosed)
	}
}

func TestTrack_SnapshotDoesNotShareAttributeSlice(t *testing.T) {
	w := New(&mockTransactionService{}, logger.Nop())

	txn := escrow.Transaction{
		ID:         "txn-1",
		Attributes: []escrow.TransactionAttribute{{AttributeID: "color", Value: "Black"}},
	}
	w.Track(txn)

	// Mutating the caller's slice after Track must not reach the snapshot.
	txn.Attributes[0].Value = "Red"

	snapshot, ok := w.Get("txn-1")
	if !ok {
		t.Fatal("snapshot missing")
	}
	if got := snapshot.Attributes[0].Value; got != "Black" {
		t.Errorf("snapshot attribute = %q, want the tracked Black", got)
	}

	// And mutating what Get handed out must not reach the snapshot either.
	snapshot.Attributes[0].Value = "Green"
	again, _ := w.Get("txn-1")
	if got := again.Attributes[0].Value; got != "Black" {
		t.Errorf("snapshot attribute after reader mutation = %q, want Black", got)
	}
}

func TestLoad_TracksSnapshot(t *testing.T) {
	svc := &mockTransactionService{
		GetTransactionFunc: func(ctx context.Context, creds escrow.Credentials, id string) (*escrow.Transaction, error) {
			return &escrow.Transaction{ID: id, Status: nullable.FromString(StatusConfirmed)}, nil
		},
	}
	w := New(svc, logger.Nop())

	if _, err := w.Load(context.Background(), escrow.Credentials{}, "txn-9"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	snapshot, ok := w.Get("txn-9")
	if !ok || snapshot.Status.Get() != StatusConfirmed {
		t.Errorf("snapshot = %+v, want tracked Confirmed transaction", snapshot)
	}
}
