package escrow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"google.golang.org/api/iterator"
)

// pagingHandler serves a fixed number of transactions honoring limit/offset.
func pagingHandler(total int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		if limit <= 0 {
			limit = total
		}

		var page []Transaction
		for i := offset; i < total && len(page) < limit; i++ {
			page = append(page, Transaction{ID: fmt.Sprintf("txn-%d", i)})
		}
		json.NewEncoder(w).Encode(page)
	})
}

func TestTransactionIterator_WalksAllPages(t *testing.T) {
	client, _ := newTestClient(t, pagingHandler(7))

	it := client.Transactions(context.Background(), Credentials{Token: "t"}, 3)

	var ids []string
	for {
		txn, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		ids = append(ids, txn.ID)
	}

	if len(ids) != 7 {
		t.Fatalf("iterated %d transactions, want 7", len(ids))
	}
	if ids[0] != "txn-0" || ids[6] != "txn-6" {
		t.Errorf("ids = %v", ids)
	}
}

func TestTransactionIterator_EmptyListing(t *testing.T) {
	client, _ := newTestClient(t, pagingHandler(0))

	it := client.Transactions(context.Background(), Credentials{Token: "t"}, 10)

	if _, err := it.Next(); !errors.Is(err, iterator.Done) {
		t.Errorf("Next on empty listing = %v, want iterator.Done", err)
	}
	// Done is sticky.
	if _, err := it.Next(); !errors.Is(err, iterator.Done) {
		t.Errorf("second Next = %v, want iterator.Done", err)
	}
}

func TestTransactionIterator_ExactPageBoundary(t *testing.T) {
	client, _ := newTestClient(t, pagingHandler(6))

	it := client.Transactions(context.Background(), Credentials{Token: "t"}, 3)

	count := 0
	for {
		_, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 6 {
		t.Errorf("iterated %d transactions, want 6", count)
	}
}

func TestTransactionIterator_PropagatesErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))

	it := client.Transactions(context.Background(), Credentials{}, 10)

	_, err := it.Next()
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("Next = %v, want AuthError", err)
	}
}
