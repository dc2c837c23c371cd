package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid_amount")

// Amount accepts a JSON number or a numeric string. Automation platforms
// often send "£25.00" or "1,250.00".
type Amount float64

var amountCleaner = strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "")

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrInvalidAmount
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidAmount
		}
		f, err := strconv.ParseFloat(amountCleaner.Replace(strings.TrimSpace(s)), 64)
		if err != nil {
			return ErrInvalidAmount
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return ErrInvalidAmount
	}
	*a = Amount(f)
	return nil
}

// Float returns nil when the field was absent.
func (a *Amount) Float() *float64 {
	if a == nil {
		return nil
	}
	f := float64(*a)
	return &f
}
