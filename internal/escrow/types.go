package escrow

import (
	"strings"

	"github.com/emagn/escrow-client/internal/nullable"
)

// Role identifies which side of a deal the signed-in user takes.
type Role string

const (
	RoleBuyer  Role = "Buyer"
	RoleSeller Role = "Seller"
	RoleBroker Role = "Broker"
)

// AttributeType enumerates the data types an attribute schema may declare.
// Unrecognized values are preserved as-is so newer backend types do not break
// older clients.
type AttributeType string

const (
	AttributeText    AttributeType = "text"
	AttributeNumber  AttributeType = "number"
	AttributeBoolean AttributeType = "boolean"
	AttributeDate    AttributeType = "date"
	AttributeList    AttributeType = "list"
)

// Known reports whether the data type is one of the recognized values.
func (t AttributeType) Known() bool {
	switch AttributeType(strings.ToLower(string(t))) {
	case AttributeText, AttributeNumber, AttributeBoolean, AttributeDate, AttributeList:
		return true
	}
	return false
}

// Category is a classification bucket for transaction items. Each category
// owns a schema of attributes.
type Category struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description nullable.String `json:"description"`
	CreatedAt   nullable.Time   `json:"created_at"`
}

// Attribute is a named, typed field definition scoped to one category.
type Attribute struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	DataType   AttributeType `json:"data_type"`
	IsRequired bool          `json:"is_required"`
	CategoryID string        `json:"category_id"`
	CreatedAt  nullable.Time `json:"created_at"`
	UpdatedAt  nullable.Time `json:"updated_at"`
}

// TransactionAttribute is a concrete (attribute reference, value) pair
// attached to one transaction. ID is assigned by the server and empty on
// locally built pairs.
type TransactionAttribute struct {
	ID          string `json:"id,omitempty"`
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

// Transaction is the metadata record of one escrow deal. Optional fields use
// the canonical nullable types; the backend serializes them inconsistently and
// decoding normalizes every shape.
type Transaction struct {
	ID               string          `json:"id"`
	Title            nullable.String `json:"title"`
	Role             Role            `json:"role"`
	Currency         string          `json:"currency"`
	InspectionPeriod nullable.String `json:"inspection_period"`

	// The backend's JSON key is misspelled; keep the wire tag faithful.
	ItemCategoryID  string          `json:"item_catagory_id"`
	ItemName        string          `json:"item_name"`
	ItemDescription nullable.String `json:"item_description"`

	Price          string          `json:"price"`
	ShippingMethod nullable.String `json:"shipping_method"`

	SellerEmail string          `json:"seller_email"`
	SellerPhone nullable.String `json:"seller_phone"`
	BuyerEmail  string          `json:"buyer_email"`
	BuyerPhone  nullable.String `json:"buyer_phone"`

	Status    nullable.String `json:"status"`
	CreatedAt nullable.Time   `json:"created_at"`
	UpdatedAt nullable.Time   `json:"updated_at"`

	// Denormalized category fields returned by some read endpoints.
	ItemCategoryName        nullable.String `json:"item_category_name"`
	ItemCategoryDescription nullable.String `json:"item_category_description"`

	Attributes []TransactionAttribute `json:"attributes,omitempty"`
}

// CategoryPayload is the create/update request body for a category.
type CategoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AttributePayload is the create request body for an attribute schema.
type AttributePayload struct {
	Name       string        `json:"name"`
	DataType   AttributeType `json:"data_type"`
	IsRequired bool          `json:"is_required"`
}

// AttributeUpdate carries partial fields for an attribute update. Nil fields
// are omitted from the request body.
type AttributeUpdate struct {
	Name       *string        `json:"name,omitempty"`
	DataType   *AttributeType `json:"data_type,omitempty"`
	IsRequired *bool          `json:"is_required,omitempty"`
}

// CreateTransactionPayload is the request body for creating a transaction.
// Status is absent on purpose: the server sets the initial status itself.
type CreateTransactionPayload struct {
	Title            string `json:"title"`
	Role             Role   `json:"role"`
	Currency         string `json:"currency"`
	InspectionPeriod string `json:"inspection_period"`
	ItemCategoryID   string `json:"item_catagory_id"`
	ItemName         string `json:"item_name"`
	ItemDescription  string `json:"item_description"`
	Price            string `json:"price"`
	ShippingMethod   string `json:"shipping_method"`
	SellerEmail      string `json:"seller_email"`
	SellerPhone      string `json:"seller_phone"`
	BuyerEmail       string `json:"buyer_email"`
	BuyerPhone       string `json:"buyer_phone"`

	Attributes []TransactionAttribute `json:"attributes,omitempty"`
}

// UpdateTransactionPayload carries partial fields for a transaction update.
// Status updates go through UpdateStatus, not here.
type UpdateTransactionPayload struct {
	Title          *string `json:"title,omitempty"`
	ShippingMethod *string `json:"shipping_method,omitempty"`
}

// ListOptions carries limit/offset paging for list endpoints. Zero values are
// omitted so the server applies its defaults.
type ListOptions struct {
	Limit  int
	Offset int
}

// User is the profile returned alongside a token by login and register.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// AuthSession is the result of a successful login or register exchange.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterPayload is the request body for account registration.
type RegisterPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	UserType  string `json:"user_type,omitempty"`
}
