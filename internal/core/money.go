// Package core holds the frontend's domain model: identities,
// categories, transactions and the money handling shared by views.
//
// This file contains parsing and formatting of monetary amounts.
// Amounts are kept as integer cents; the backend speaks decimal
// strings or JSON numbers, both of which decode into cents.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents. The backend serializes decimals, so
// Money converts on the JSON boundary in both directions.
type Money struct {
	Cents int64
}

// ParseAmount converts a user-entered decimal string to cents with
// half-up rounding on the third decimal place. It accepts both dot
// (12.34) and comma (12,34) separators and rejects signs, zero and
// non-numeric input: form amounts are always positive.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234, nil
//	ParseAmount("12,34")  -> 1234, nil
//	ParseAmount("12.346") -> 1235, nil (rounds up)
func ParseAmount(s string) (Money, error) {
	cents, err := parseCents(s, false)
	if err != nil {
		return Money{}, err
	}
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}

// parseCents does the shared decimal-to-cents conversion. Signed
// values (balance can be negative) are only allowed on the wire path.
func parseCents(s string, allowSigned bool) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	neg := false
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		if !allowSigned {
			return 0, ErrInvalidAmount
		}
		neg = s[0] == '-'
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return cents, nil
}

// Dollars returns the dollar value as a float64 for display math.
// Use cents for anything that accumulates.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// Decimal renders the plain two-decimal form ("1800.00", "-12.50"),
// which is also the wire encoding for create/update requests.
func (m Money) Decimal() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// FormatUSD renders the fixed-locale currency form with thousands
// separators, e.g. 180000 cents -> "$1,800.00".
func (m Money) FormatUSD() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(whole) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(whole[:lead])
	for i := lead; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(pad2(cents % 100))
	return b.String()
}

// Negative reports whether the amount is below zero, used for
// styling the dashboard balance.
func (m Money) Negative() bool {
	return m.Cents < 0
}

// MarshalJSON encodes as a bare decimal number, the form the
// backend's transaction endpoints accept.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal()), nil
}

// UnmarshalJSON accepts both `12.34` and `"12.34"`: the backend
// serializes decimals as strings in some payloads and numbers in
// others.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" || s == "" {
		m.Cents = 0
		return nil
	}
	cents, err := parseCents(s, true)
	if err != nil {
		return err
	}
	m.Cents = cents
	return nil
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
