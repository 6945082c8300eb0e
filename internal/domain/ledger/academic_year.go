package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/hostelms/backend/internal/domain/shared"
)

// AcademicYear identifies the fee period a payment applies to, e.g. "2025-26".
// It is distinct from the calendar year used in receipt numbering.
type AcademicYear string

var academicYearPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// NewAcademicYear validates and returns an academic year label
func NewAcademicYear(label string) (AcademicYear, error) {
	m := academicYearPattern.FindStringSubmatch(label)
	if m == nil {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Academic year must look like 2025-26, got %q", label))
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Academic year %q does not span consecutive years", label))
	}
	return AcademicYear(label), nil
}

// DefaultAcademicYear derives the July-June style label for the given moment:
// "<currentYear>-<last two digits of next year>"
func DefaultAcademicYear(now time.Time) AcademicYear {
	y := now.Year()
	return AcademicYear(fmt.Sprintf("%d-%02d", y, (y+1)%100))
}

// IsValid reports whether the label parses as an academic year
func (y AcademicYear) IsValid() bool {
	_, err := NewAcademicYear(string(y))
	return err == nil
}

// StartYear returns the calendar year the academic year begins in
func (y AcademicYear) StartYear() int {
	m := academicYearPattern.FindStringSubmatch(string(y))
	if m == nil {
		return 0
	}
	start, _ := strconv.Atoi(m[1])
	return start
}

// Next returns the following academic year label
func (y AcademicYear) Next() AcademicYear {
	start := y.StartYear()
	if start == 0 {
		return ""
	}
	return AcademicYear(fmt.Sprintf("%d-%02d", start+1, (start+2)%100))
}

// String returns the label
func (y AcademicYear) String() string {
	return string(y)
}
