package escrow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListTransactions fetches transactions with optional limit/offset paging.
func (c *Client) ListTransactions(ctx context.Context, creds Credentials, opts ListOptions) ([]Transaction, error) {
	var transactions []Transaction
	err := c.do(ctx, creds, http.MethodGet, "/api/transactions", pagingQuery(opts), nil, &transactions)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	return transactions, nil
}

// ListTransactionsByCategory fetches transactions whose item belongs to the
// given category.
func (c *Client) ListTransactionsByCategory(ctx context.Context, creds Credentials, categoryID string, opts ListOptions) ([]Transaction, error) {
	var transactions []Transaction
	path := "/api/transactions/categories/" + url.PathEscape(categoryID)
	err := c.do(ctx, creds, http.MethodGet, path, pagingQuery(opts), nil, &transactions)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByCategory: %w", err)
	}
	return transactions, nil
}

// GetTransaction fetches one transaction by id.
func (c *Client) GetTransaction(ctx context.Context, creds Credentials, id string) (*Transaction, error) {
	var txn Transaction
	err := c.do(ctx, creds, http.MethodGet, "/api/transactions/"+url.PathEscape(id), nil, nil, &txn)
	if err != nil {
		return nil, fmt.Errorf("GetTransaction: %w", err)
	}
	return &txn, nil
}

// CreateTransaction creates a transaction, optionally with an initial list of
// attribute values. The server assigns the initial status.
func (c *Client) CreateTransaction(ctx context.Context, creds Credentials, payload CreateTransactionPayload) (*Transaction, error) {
	var txn Transaction
	err := c.do(ctx, creds, http.MethodPost, "/api/transactions", nil, payload, &txn)
	if err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", err)
	}
	return &txn, nil
}

// UpdateTransaction applies a partial update to a transaction's mutable
// fields. Status changes must go through UpdateTransactionStatus.
func (c *Client) UpdateTransaction(ctx context.Context, creds Credentials, id string, payload UpdateTransactionPayload) (*Transaction, error) {
	var txn Transaction
	err := c.do(ctx, creds, http.MethodPut, "/api/transactions/"+url.PathEscape(id), nil, payload, &txn)
	if err != nil {
		return nil, fmt.Errorf("UpdateTransaction: %w", err)
	}
	return &txn, nil
}

// UpdateTransactionStatus submits a new status and returns the server's
// updated record. There is no client-enforced transition graph; the server is
// authoritative.
func (c *Client) UpdateTransactionStatus(ctx context.Context, creds Credentials, id, status string) (*Transaction, error) {
	payload := map[string]string{"status": status}

	var txn Transaction
	path := "/api/transactions/" + url.PathEscape(id) + "/status"
	err := c.do(ctx, creds, http.MethodPatch, path, nil, payload, &txn)
	if err != nil {
		return nil, fmt.Errorf("UpdateTransactionStatus: %w", err)
	}
	return &txn, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, creds Credentials, id string) error {
	err := c.do(ctx, creds, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	return nil
}

// ListTransactionAttributes fetches the attribute values attached to a
// transaction.
func (c *Client) ListTransactionAttributes(ctx context.Context, creds Credentials, transactionID string) ([]TransactionAttribute, error) {
	var attrs []TransactionAttribute
	path := "/api/transactions/" + url.PathEscape(transactionID) + "/attributes"
	err := c.do(ctx, creds, http.MethodGet, path, nil, nil, &attrs)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionAttributes: %w", err)
	}
	return attrs, nil
}

// AddTransactionAttribute attaches one attribute value to a transaction.
func (c *Client) AddTransactionAttribute(ctx context.Context, creds Credentials, transactionID string, attr TransactionAttribute) (*TransactionAttribute, error) {
	var created TransactionAttribute
	path := "/api/transactions/" + url.PathEscape(transactionID) + "/attributes"
	err := c.do(ctx, creds, http.MethodPost, path, nil, attr, &created)
	if err != nil {
		return nil, fmt.Errorf("AddTransactionAttribute: %w", err)
	}
	return &created, nil
}

// UpdateTransactionAttribute replaces the value of one attached attribute.
func (c *Client) UpdateTransactionAttribute(ctx context.Context, creds Credentials, transactionID, attributeID string, attr TransactionAttribute) (*TransactionAttribute, error) {
	var updated TransactionAttribute
	path := "/api/transactions/" + url.PathEscape(transactionID) + "/attributes/" + url.PathEscape(attributeID)
	err := c.do(ctx, creds, http.MethodPut, path, nil, attr, &updated)
	if err != nil {
		return nil, fmt.Errorf("UpdateTransactionAttribute: %w", err)
	}
	return &updated, nil
}

// DeleteTransactionAttribute detaches one attribute value from a transaction.
func (c *Client) DeleteTransactionAttribute(ctx context.Context, creds Credentials, transactionID, attributeID string) error {
	path := "/api/transactions/" + url.PathEscape(transactionID) + "/attributes/" + url.PathEscape(attributeID)
	err := c.do(ctx, creds, http.MethodDelete, path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("DeleteTransactionAttribute: %w", err)
	}
	return nil
}

// DeleteAllTransactionAttributes detaches every attribute value from a
// transaction.
func (c *Client) DeleteAllTransactionAttributes(ctx context.Context, creds Credentials, transactionID string) error {
	path := "/api/transactions/" + url.PathEscape(transactionID) + "/attributes"
	err := c.do(ctx, creds, http.MethodDelete, path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("DeleteAllTransactionAttributes: %w", err)
	}
	return nil
}
