// Package sms turns bank notification text into structured debit records.
//
// Every rule table in this package is an ordered slice evaluated top to
// bottom; the first rule that yields a usable value wins.
package sms

import "strings"

// indicatorWords mark a message as a debit notification.
var indicatorWords = []string{"debited", "spent", "paid", "withdrawn"}

// IsTransaction reports whether body looks like a transaction notification.
// Messages without an indicator word are ignored even if they mention money.
func IsTransaction(body string) bool {
	lower := strings.ToLower(body)
	for _, w := range indicatorWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
