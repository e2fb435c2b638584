package workflow

import "testing"

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"PendingSellerConfirm", "Pending Seller Confirm"},
		{"Pending", "Pending"},
		{"Shipped", "Shipped"},
		{"open", "Open"},
		{"action-required", "Action-required"},
		{"éclair", "Éclair"},
		{"", "Unknown Status"},
		{"   ", "Unknown Status"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := DisplayLabel(tt.status); got != tt.want {
				t.Errorf("DisplayLabel(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestColorClass(t *testing.T) {
	tests := []struct {
		status string
		want   Class
	}{
		{"Pending", ClassWarning},
		{"pending", ClassWarning},
		{"Confirmed", ClassInfo},
		{"open", ClassSuccess},
		{"Closed", ClassNeutralDark},
		{"Shipped", ClassHighlight},
		{"action-required", ClassDanger},
		{"Completed", ClassSuccessDark},
		{"Cancelled", ClassDangerDark},
		{"payment failed", ClassDangerDark},
		{"", ClassNeutral},
		{"SomethingElse", ClassNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := ColorClass(tt.status); got != tt.want {
				t.Errorf("ColorClass(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestColorClass_CompoundBeatsPlainPending(t *testing.T) {
	got := ColorClass("PendingSellerConfirm")
	if got == ClassWarning {
		t.Fatal("compound pending+seller status resolved to the plain pending bucket")
	}
	if got != ClassInfo {
		t.Errorf("ColorClass(PendingSellerConfirm) = %q, want %q", got, ClassInfo)
	}
}

func TestStatuses_ContainsKnownSet(t *testing.T) {
	statuses := Statuses()
	if len(statuses) != 8 {
		t.Fatalf("Statuses() returned %d values, want 8", len(statuses))
	}
	if statuses[0] != StatusPending {
		t.Errorf("initial status should be first, got %q", statuses[0])
	}
}
