// Package validate performs client-side checks on user input before anything
// is sent to the API. Failures surface as escrow.ValidationError and are never
// submitted.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/emagn/escrow-client/internal/escrow"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// RegisterInput is the sign-up form. ConfirmPassword is checked locally and
// never sent to the server.
type RegisterInput struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Phone           string `validate:"omitempty,e164"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	UserType        string `validate:"omitempty,oneof=Individual Business"`
}

// Register checks a sign-up form.
func Register(input RegisterInput) error {
	return translate(v.Struct(input))
}

// createTransactionInput mirrors the create payload with validation tags.
type createTransactionInput struct {
	Role        string `validate:"required,oneof=Buyer Seller Broker"`
	Currency    string `validate:"required"`
	ItemName    string `validate:"required"`
	Price       string `validate:"required"`
	SellerEmail string `validate:"required,email"`
	BuyerEmail  string `validate:"required,email"`
}

// CreateTransaction checks a transaction creation payload. knownCategory
// reports whether a category id exists in the loaded registry; pass nil to
// skip the reference check (the server stays authoritative either way).
func CreateTransaction(payload escrow.CreateTransactionPayload, knownCategory func(id string) bool) error {
	input := createTransactionInput{
		Role:        string(payload.Role),
		Currency:    payload.Currency,
		ItemName:    payload.ItemName,
		Price:       payload.Price,
		SellerEmail: payload.SellerEmail,
		BuyerEmail:  payload.BuyerEmail,
	}
	if err := translate(v.Struct(input)); err != nil {
		return err
	}

	if price, err := decimal.NewFromString(payload.Price); err != nil {
		return &escrow.ValidationError{Field: "price", Message: fmt.Sprintf("%q is not a valid amount", payload.Price)}
	} else if price.IsNegative() {
		return &escrow.ValidationError{Field: "price", Message: "price must not be negative"}
	}

	if payload.ItemCategoryID != "" && knownCategory != nil && !knownCategory(payload.ItemCategoryID) {
		return &escrow.ValidationError{Field: "item_catagory_id", Message: fmt.Sprintf("unknown category %q", payload.ItemCategoryID)}
	}

	return nil
}

// CleanAttributePairs filters a user-entered attribute list. Fully blank rows
// are dropped silently (an empty optional row is not an error); half-filled
// rows are rejected; complete pairs are kept with surrounding whitespace
// trimmed.
func CleanAttributePairs(pairs []escrow.TransactionAttribute) ([]escrow.TransactionAttribute, error) {
	cleaned := make([]escrow.TransactionAttribute, 0, len(pairs))

	for _, pair := range pairs {
		attributeID := strings.TrimSpace(pair.AttributeID)
		value := strings.TrimSpace(pair.Value)

		switch {
		case attributeID == "" && value == "":
			continue
		case attributeID == "":
			return nil, &escrow.ValidationError{Field: "attribute_id", Message: fmt.Sprintf("value %q has no attribute selected", value)}
		case value == "":
			return nil, &escrow.ValidationError{Field: "value", Message: fmt.Sprintf("attribute %q has no value", attributeID)}
		default:
			cleaned = append(cleaned, escrow.TransactionAttribute{ID: pair.ID, AttributeID: attributeID, Value: value})
		}
	}
	return cleaned, nil
}

// translate converts validator errors into the client error taxonomy with a
// readable message for the first failing field.
func translate(err error) error {
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &escrow.ValidationError{Message: err.Error()}
	}

	first := errs[0]
	field := strings.ToLower(first.Field())

	var message string
	switch first.Tag() {
	case "required":
		message = "is required"
	case "email":
		message = "must be a valid email address"
	case "e164":
		message = "must be a phone number in international format"
	case "min":
		message = fmt.Sprintf("must be at least %s characters", first.Param())
	case "eqfield":
		message = "does not match"
	case "oneof":
		message = fmt.Sprintf("must be one of: %s", first.Param())
	default:
		message = fmt.Sprintf("failed %s validation", first.Tag())
	}

	return &escrow.ValidationError{Field: field, Message: fmt.Sprintf("%s %s", field, message)}
}
