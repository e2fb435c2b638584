// Package workflow handles transaction status: the known status set, display
// formatting, semantic color buckets, and the update operation that keeps a
// local snapshot consistent with the server.
package workflow

import (
	"strings"
	"unicode"
)

// Known status values. The set is flat: the server accepts a transition from
// any status to any other, and the client does not enforce a graph. Closed,
// Cancelled and Completed are conventionally terminal.
const (
	StatusPending              = "Pending"
	StatusPendingSellerConfirm = "PendingSellerConfirm"
	StatusConfirmed            = "Confirmed"
	StatusShipped              = "Shipped"
	StatusDelivered            = "Delivered"
	StatusCompleted            = "Completed"
	StatusClosed               = "Closed"
	StatusCancelled            = "Cancelled"
)

// Statuses returns the known status values in workflow order.
func Statuses() []string {
	return []string{
		StatusPending,
		StatusPendingSellerConfirm,
		StatusConfirmed,
		StatusShipped,
		StatusDelivered,
		StatusCompleted,
		StatusClosed,
		StatusCancelled,
	}
}

// DisplayLabel formats a status for display: a space before each internal
// uppercase run, first character uppercased, trimmed. Empty input yields
// "Unknown Status". The function is pure and total; it never panics on
// malformed input.
func DisplayLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return "Unknown Status"
	}

	var b strings.Builder
	runes := []rune(status)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Class is a semantic color bucket for a status badge. Rendering code maps
// buckets to concrete styles; this package only categorizes.
type Class string

const (
	ClassWarning     Class = "warning"
	ClassInfo        Class = "info"
	ClassSuccess     Class = "success"
	ClassSuccessDark Class = "success-dark"
	ClassHighlight   Class = "highlight"
	ClassDanger      Class = "danger"
	ClassDangerDark  Class = "danger-dark"
	ClassNeutral     Class = "neutral"
	ClassNeutralDark Class = "neutral-dark"
)

// colorRules map case-insensitive substring matches to buckets. Order matters:
// compound matches come before the plain fragments they contain, so
// PendingSellerConfirm resolves to its own bucket rather than the generic
// pending one.
var colorRules = []struct {
	fragments []string
	class     Class
}{
	{[]string{"pending", "seller"}, ClassInfo},
	{[]string{"cancelled"}, ClassDangerDark},
	{[]string{"failed"}, ClassDangerDark},
	{[]string{"completed"}, ClassSuccessDark},
	{[]string{"pending"}, ClassWarning},
	{[]string{"confirm"}, ClassInfo},
	{[]string{"open"}, ClassSuccess},
	{[]string{"closed"}, ClassNeutralDark},
	{[]string{"shipped"}, ClassHighlight},
	{[]string{"action"}, ClassDanger},
	{[]string{"required"}, ClassDanger},
}

// ColorClass categorizes a status into a bucket. Unknown or empty statuses
// get the neutral bucket; the function never panics.
func ColorClass(status string) Class {
	lower := strings.ToLower(status)

	for _, rule := range colorRules {
		matched := true
		for _, fragment := range rule.fragments {
			if !strings.Contains(lower, fragment) {
				matched = false
				break
			}
		}
		if matched {
			return rule.class
		}
	}
	return ClassNeutral
}
