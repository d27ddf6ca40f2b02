package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value as reported by a backend service. Services send
// numbers or numeric strings; anything else decodes as an invalid Amount
// that counts as zero.
type Amount struct {
	value decimal.Decimal
	raw   string
	valid bool
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{value: d, raw: d.String(), valid: true}
}

// ParseAmount never fails; unparseable input yields an invalid Amount.
func ParseAmount(s string) Amount {
	trimmed := strings.TrimSpace(s)
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{raw: s}
	}
	return Amount{value: d, raw: trimmed, valid: true}
}

func (a Amount) Valid() bool { return a.valid }

// Decimal returns the value, or zero when the amount is invalid.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

func (a Amount) String() string {
	if !a.valid {
		return a.raw
	}
	return a.value.StringFixed(2)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*a = Amount{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = Amount{raw: s}
			return nil
		}
		*a = ParseAmount(str)
		return nil
	}
	*a = ParseAmount(s)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.valid {
		return []byte(a.value.String()), nil
	}
	if a.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(a.raw)
}
