package escrow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emagn/escrow-client/internal/nullable"
)

// Profile is the signed-in user's account information: personal details plus
// optional business and bank sections. Every field is optional on the wire
// and decodes through the canonical nullable type.
type Profile struct {
	FullName nullable.String `json:"full_name"`
	Email    nullable.String `json:"email"`
	Phone    nullable.String `json:"phone"`
	Country  nullable.String `json:"country"`

	CompanyName     nullable.String `json:"company_name"`
	BusinessType    nullable.String `json:"business_type"`
	BusinessAddress nullable.String `json:"business_address"`

	BankAccountName nullable.String `json:"bank_account_name"`
	BankName        nullable.String `json:"bank_name"`
	AccountNumber   nullable.String `json:"account_number"`
	RoutingNumber   nullable.String `json:"routing_number"`
	SwiftBIC        nullable.String `json:"swift_bic"`
}

// ProfileUpdate carries partial fields for a profile update. Nil fields are
// omitted from the request body and left untouched by the server.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Country  *string `json:"country,omitempty"`

	CompanyName     *string `json:"company_name,omitempty"`
	BusinessType    *string `json:"business_type,omitempty"`
	BusinessAddress *string `json:"business_address,omitempty"`

	BankAccountName *string `json:"bank_account_name,omitempty"`
	BankName        *string `json:"bank_name,omitempty"`
	AccountNumber   *string `json:"account_number,omitempty"`
	RoutingNumber   *string `json:"routing_number,omitempty"`
	SwiftBIC        *string `json:"swift_bic,omitempty"`
}

// GetProfile fetches the signed-in user's account profile.
func (c *Client) GetProfile(ctx context.Context, creds Credentials) (*Profile, error) {
	var profile Profile
	err := c.do(ctx, creds, http.MethodGet, "/api/profile", nil, nil, &profile)
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to the signed-in user's profile and
// returns the server's record.
func (c *Client) UpdateProfile(ctx context.Context, creds Credentials, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	err := c.do(ctx, creds, http.MethodPut, "/api/update", nil, update, &profile)
	if err != nil {
		return nil, fmt.Errorf("UpdateProfile: %w", err)
	}
	return &profile, nil
}
