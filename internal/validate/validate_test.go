package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/emagn/escrow-client/internal/escrow"
)

func TestRegister(t *testing.T) {
	valid := RegisterInput{
		FirstName:       "Abel",
		LastName:        "Tesfaye",
		Email:           "abel@example.com",
		Phone:           "+251911234567",
		Password:        "correcthorse",
		ConfirmPassword: "correcthorse",
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr bool
	}{
		{"valid input", func(in *RegisterInput) {}, false},
		{"valid without phone", func(in *RegisterInput) { in.Phone = "" }, false},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, true},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, true},
		{"malformed phone", func(in *RegisterInput) { in.Phone = "0911-234-567" }, true},
		{"short password", func(in *RegisterInput) { in.Password = "abc"; in.ConfirmPassword = "abc" }, true},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "different" }, true},
		{"bad user type", func(in *RegisterInput) { in.UserType = "Alien" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := Register(input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var validationErr *escrow.ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("error = %T, want *escrow.ValidationError", err)
				}
			}
		})
	}
}

func TestCreateTransaction(t *testing.T) {
	valid := escrow.CreateTransactionPayload{
		Title:          "MacBook sale",
		Role:           escrow.RoleBuyer,
		Currency:       "ETB",
		ItemCategoryID: "cat-1",
		ItemName:       "MacBook Pro",
		Price:          "19999",
		SellerEmail:    "seller@example.com",
		BuyerEmail:     "buyer@example.com",
	}
	knownCategory := func(id string) bool { return id == "cat-1" }

	tests := []struct {
		name    string
		mutate  func(*escrow.CreateTransactionPayload)
		wantErr bool
	}{
		{"valid payload", func(p *escrow.CreateTransactionPayload) {}, false},
		{"missing role", func(p *escrow.CreateTransactionPayload) { p.Role = "" }, true},
		{"unknown role", func(p *escrow.CreateTransactionPayload) { p.Role = "Spectator" }, true},
		{"missing currency", func(p *escrow.CreateTransactionPayload) { p.Currency = "" }, true},
		{"missing item name", func(p *escrow.CreateTransactionPayload) { p.ItemName = "" }, true},
		{"unparsable price", func(p *escrow.CreateTransactionPayload) { p.Price = "abc" }, true},
		{"negative price", func(p *escrow.CreateTransactionPayload) { p.Price = "-5" }, true},
		{"unknown category", func(p *escrow.CreateTransactionPayload) { p.ItemCategoryID = "cat-404" }, true},
		{"empty category skips reference check", func(p *escrow.CreateTransactionPayload) { p.ItemCategoryID = "" }, false},
		{"bad seller email", func(p *escrow.CreateTransactionPayload) { p.SellerEmail = "nope" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid
			tt.mutate(&payload)

			err := CreateTransaction(payload, knownCategory)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateTransaction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTransaction_NilCategoryLookup(t *testing.T) {
	payload := escrow.CreateTransactionPayload{
		Role:           escrow.RoleSeller,
		Currency:       "USD",
		ItemCategoryID: "anything",
		ItemName:       "Bike",
		Price:          "100",
		SellerEmail:    "s@example.com",
		BuyerEmail:     "b@example.com",
	}

	// With no registry loaded the reference check is skipped; the server
	// stays authoritative.
	if err := CreateTransaction(payload, nil); err != nil {
		t.Errorf("CreateTransaction with nil lookup = %v, want nil", err)
	}
}

func TestCleanAttributePairs_ErrorNamesTheField(t *testing.T) {
	_, err := CleanAttributePairs([]escrow.TransactionAttribute{{AttributeID: "color"}})
	if err == nil {
		t.Fatal("half-filled pair should be rejected")
	}
	// The user-facing rendering must carry the concrete complaint, not a
	// generic fallback.
	if got := escrow.Humanize(err); !strings.Contains(got, "color") {
		t.Errorf("Humanize = %q, want the attribute named", got)
	}
}

func TestCleanAttributePairs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []escrow.TransactionAttribute
		want    int
		wantErr bool
	}{
		{
			name:  "complete pair accepted",
			pairs: []escrow.TransactionAttribute{{AttributeID: "color", Value: "Red"}},
			want:  1,
		},
		{
			name:  "blank row dropped silently",
			pairs: []escrow.TransactionAttribute{{AttributeID: "", Value: ""}},
			want:  0,
		},
		{
			name:    "value without attribute rejected",
			pairs:   []escrow.TransactionAttribute{{AttributeID: "", Value: "Red"}},
			wantErr: true,
		},
		{
			name:    "attribute without value rejected",
			pairs:   []escrow.TransactionAttribute{{AttributeID: "color", Value: ""}},
			wantErr: true,
		},
		{
			name: "mixed rows",
			pairs: []escrow.TransactionAttribute{
				{AttributeID: "color", Value: "Black"},
				{AttributeID: "", Value: ""},
				{AttributeID: "size", Value: "14-inch"},
			},
			want: 2,
		},
		{
			name:  "whitespace trimmed",
			pairs: []escrow.TransactionAttribute{{AttributeID: " color ", Value: " Red "}},
			want:  1,
		},
		{
			name:  "whitespace-only row dropped",
			pairs: []escrow.TransactionAttribute{{AttributeID: "  ", Value: " "}},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanAttributePairs(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CleanAttributePairs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != tt.want {
				t.Errorf("CleanAttributePairs() kept %d pairs, want %d", len(got), tt.want)
			}
			for _, pair := range got {
				if pair.AttributeID != strings.TrimSpace(pair.AttributeID) || pair.Value != strings.TrimSpace(pair.Value) {
					t.Errorf("pair not trimmed: %+v", pair)
				}
			}
		})
	}
}
