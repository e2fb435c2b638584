package escrow

import (
	"context"
	"fmt"

	"google.golang.org/api/iterator"
)

const defaultPageSize = 50

// TransactionIterator walks a transaction listing page by page using the
// limit/offset parameters of the list endpoints. Next returns iterator.Done
// once the listing is exhausted.
type TransactionIterator struct {
	ctx        context.Context
	client     *Client
	creds      Credentials
	categoryID string
	pageSize   int
	offset     int
	buf        []Transaction
	exhausted  bool
}

// Transactions returns an iterator over all transactions visible to the
// caller. pageSize <= 0 selects a default.
func (c *Client) Transactions(ctx context.Context, creds Credentials, pageSize int) *TransactionIterator {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &TransactionIterator{ctx: ctx, client: c, creds: creds, pageSize: pageSize}
}

// TransactionsByCategory returns an iterator over transactions in one
// category.
func (c *Client) TransactionsByCategory(ctx context.Context, creds Credentials, categoryID string, pageSize int) *TransactionIterator {
	it := c.Transactions(ctx, creds, pageSize)
	it.categoryID = categoryID
	return it
}

// Next returns the next transaction. It returns iterator.Done when the
// listing is exhausted; any other error is from the underlying list call.
func (it *TransactionIterator) Next() (*Transaction, error) {
	if len(it.buf) == 0 {
		if it.exhausted {
			return nil, iterator.Done
		}
		if err := it.fetchPage(); err != nil {
			return nil, err
		}
		if len(it.buf) == 0 {
			return nil, iterator.Done
		}
	}

	txn := it.buf[0]
	it.buf = it.buf[1:]
	return &txn, nil
}

func (it *TransactionIterator) fetchPage() error {
	opts := ListOptions{Limit: it.pageSize, Offset: it.offset}

	var (
		page []Transaction
		err  error
	)
	if it.categoryID != "" {
		page, err = it.client.ListTransactionsByCategory(it.ctx, it.creds, it.categoryID, opts)
	} else {
		page, err = it.client.ListTransactions(it.ctx, it.creds, opts)
	}
	if err != nil {
		return fmt.Errorf("fetch page at offset %d: %w", it.offset, err)
	}

	it.offset += len(page)
	it.buf = page
	if len(page) < it.pageSize {
		it.exhausted = true
	}
	return nil
}
