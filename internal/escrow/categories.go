package escrow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListCategories fetches the full category list.
func (c *Client) ListCategories(ctx context.Context, creds Credentials) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, creds, http.MethodGet, "/api/categories", nil, nil, &categories)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches one category by id.
func (c *Client) GetCategory(ctx context.Context, creds Credentials, id string) (*Category, error) {
	var category Category
	err := c.do(ctx, creds, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, nil, &category)
	if err != nil {
		return nil, fmt.Errorf("GetCategory: %w", err)
	}
	return &category, nil
}

// CreateCategory creates a category and returns the server's record.
func (c *Client) CreateCategory(ctx context.Context, creds Credentials, payload CategoryPayload) (*Category, error) {
	var category Category
	err := c.do(ctx, creds, http.MethodPost, "/api/categories", nil, payload, &category)
	if err != nil {
		return nil, fmt.Errorf("CreateCategory: %w", err)
	}
	return &category, nil
}

// UpdateCategory updates a category's name and description.
func (c *Client) UpdateCategory(ctx context.Context, creds Credentials, id string, payload CategoryPayload) (*Category, error) {
	var category Category
	err := c.do(ctx, creds, http.MethodPut, "/api/categories/"+url.PathEscape(id), nil, payload, &category)
	if err != nil {
		return nil, fmt.Errorf("UpdateCategory: %w", err)
	}
	return &category, nil
}

// DeleteCategory deletes a category. The backend cascades the delete to the
// category's attribute schema.
func (c *Client) DeleteCategory(ctx context.Context, creds Credentials, id string) error {
	err := c.do(ctx, creds, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("DeleteCategory: %w", err)
	}
	return nil
}

// ListAttributes fetches the attribute schema for one category. A category
// with no attributes yields an empty slice.
func (c *Client) ListAttributes(ctx context.Context, creds Credentials, categoryID string) ([]Attribute, error) {
	var attributes []Attribute
	path := "/api/categories/" + url.PathEscape(categoryID) + "/attributes"
	err := c.do(ctx, creds, http.MethodGet, path, nil, nil, &attributes)
	if err != nil {
		return nil, fmt.Errorf("ListAttributes: %w", err)
	}
	return attributes, nil
}

// GetAttribute fetches one attribute schema definition by id.
func (c *Client) GetAttribute(ctx context.Context, creds Credentials, attributeID string) (*Attribute, error) {
	var attribute Attribute
	path := "/api/categories/attributes/" + url.PathEscape(attributeID)
	err := c.do(ctx, creds, http.MethodGet, path, nil, nil, &attribute)
	if err != nil {
		return nil, fmt.Errorf("GetAttribute: %w", err)
	}
	return &attribute, nil
}

// CreateAttribute adds an attribute definition to a category's schema.
func (c *Client) CreateAttribute(ctx context.Context, creds Credentials, categoryID string, payload AttributePayload) (*Attribute, error) {
	var attribute Attribute
	path := "/api/categories/" + url.PathEscape(categoryID) + "/attributes"
	err := c.do(ctx, creds, http.MethodPost, path, nil, payload, &attribute)
	if err != nil {
		return nil, fmt.Errorf("CreateAttribute: %w", err)
	}
	return &attribute, nil
}

// UpdateAttribute applies a partial update to an attribute definition.
func (c *Client) UpdateAttribute(ctx context.Context, creds Credentials, attributeID string, update AttributeUpdate) (*Attribute, error) {
	var attribute Attribute
	path := "/api/categories/attributes/" + url.PathEscape(attributeID)
	err := c.do(ctx, creds, http.MethodPut, path, nil, update, &attribute)
	if err != nil {
		return nil, fmt.Errorf("UpdateAttribute: %w", err)
	}
	return &attribute, nil
}

// DeleteAttribute removes an attribute definition from its category's schema.
func (c *Client) DeleteAttribute(ctx context.Context, creds Credentials, attributeID string) error {
	path := "/api/categories/attributes/" + url.PathEscape(attributeID)
	err := c.do(ctx, creds, http.MethodDelete, path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("DeleteAttribute: %w", err)
	}
	return nil
}
