package ledger

import (
	"fmt"
	"regexp"
)

// Receipt numbers are calendar-year scoped: "<year>-<4 digit sequence>".
// The sequence counter persists under this key pattern, one row per year.
const SequenceKeyPrefix = "receipt_sequence_"

var receiptNumberPattern = regexp.MustCompile(`^\d{4}-\d{4,}$`)

// SequenceKey returns the counter key for a calendar year
func SequenceKey(calendarYear int) string {
	return fmt.Sprintf("%s%d", SequenceKeyPrefix, calendarYear)
}

// FormatReceiptNumber renders a receipt number from year and sequence value
func FormatReceiptNumber(calendarYear int, seq int64) string {
	return fmt.Sprintf("%d-%04d", calendarYear, seq)
}

// IsWellFormedReceiptNumber reports whether a string matches the auto-generated
// receipt number shape. Manual numbers are not required to match.
func IsWellFormedReceiptNumber(number string) bool {
	return receiptNumberPattern.MatchString(number)
}
