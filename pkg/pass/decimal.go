package pass

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is an exact decimal number kept in lexical form. It is written to
// pass.json as a raw JSON number with its original scale, so 12.50 stays
// 12.50 and no binary floating point rounding is introduced. The zero value
// is 0.
type Decimal struct {
	text string
}

// ParseDecimal parses an optionally signed decimal such as "42", "-0.5" or
// "1000.00". Exponents are rejected. The result is canonicalised: a leading
// '+' and redundant leading zeros are removed, a missing integer part becomes
// 0 and a trailing '.' is dropped. Fractional digits are kept as given.
func ParseDecimal(raw string) (Decimal, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Decimal{}, fmt.Errorf("%w: empty string", ErrInvalidDecimal)
	}

	negative := false
	switch value[0] {
	case '-':
		negative = true
		value = value[1:]
	case '+':
		value = value[1:]
	}

	integer, fraction, hasDot := strings.Cut(value, ".")
	if integer == "" && fraction == "" {
		return Decimal{}, fmt.Errorf("%w: %q has no digits", ErrInvalidDecimal, raw)
	}
	if !allDigits(integer) || !allDigits(fraction) {
		return Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, raw)
	}

	integer = strings.TrimLeft(integer, "0")
	if integer == "" {
		integer = "0"
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(integer)
	if hasDot && fraction != "" {
		b.WriteByte('.')
		b.WriteString(fraction)
	}
	return Decimal{text: b.String()}, nil
}

// MustDecimal is ParseDecimal for constants known to be valid. It panics on
// malformed input.
func MustDecimal(raw string) Decimal {
	d, err := ParseDecimal(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalFromInt returns the decimal for an integer value.
func DecimalFromInt(v int64) Decimal {
	return Decimal{text: strconv.FormatInt(v, 10)}
}

// String returns the canonical lexical form.
func (d Decimal) String() string {
	if d.text == "" {
		return "0"
	}
	return d.text
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() int {
	_, fraction, _ := strings.Cut(d.text, ".")
	return len(fraction)
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the decimal as an unquoted JSON number.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDecimal, err)
		}
		raw = quoted
	}
	return d.UnmarshalText([]byte(raw))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
