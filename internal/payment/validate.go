package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	cardPattern = regexp.MustCompile(`^\d{16}$`)
	cvvPattern  = regexp.MustCompile(`^\d{3,4}$`)

	monthYearShort = regexp.MustCompile(`^(\d{1,2})/(\d{2})$`)
	monthYearLong  = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
	yearMonth      = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
)

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// validateInstrument checks the amount and card fields in a fixed order and
// returns the first failure.
func validateInstrument(amountCents int64, cardNumber, expiry, cvv string, now time.Time) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if !cardPattern.MatchString(stripSpaces(cardNumber)) {
		return ErrInvalidCardNumber
	}
	if !cvvPattern.MatchString(strings.TrimSpace(cvv)) {
		return ErrInvalidCVV
	}
	exp, ok := parseExpiry(strings.TrimSpace(expiry))
	if !ok {
		return ErrInvalidExpiryFormat
	}
	if exp.Before(now) {
		return ErrCardExpired
	}
	return nil
}

// parseExpiry accepts MM/YY, MM/YYYY, YYYY-MM and ISO dates. Month forms
// expire at the end of that month.
func parseExpiry(raw string) (time.Time, bool) {
	if m := monthYearShort.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[2])
		return endOfMonth(2000+year, m[1])
	}
	if m := monthYearLong.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[2])
		return endOfMonth(year, m[1])
	}
	if m := yearMonth.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		return endOfMonth(year, m[2])
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func endOfMonth(year int, rawMonth string) (time.Time, bool) {
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	firstOfNext := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.Add(-time.Nanosecond), true
}
