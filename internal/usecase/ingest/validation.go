package ingest

import (
	"math"
	"strings"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/httperr"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/timezone"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/validators"
)

func requireEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return httperr.ErrValidation("missing_email")
	}
	if !validators.IsEmail(email) {
		return httperr.ErrValidation("invalid_email")
	}
	return nil
}

func requireAmount(amount *float64) (float64, error) {
	if amount == nil {
		return 0, httperr.ErrValidation("missing_amount")
	}
	if *amount < 0 || math.IsNaN(*amount) || math.IsInf(*amount, 0) {
		return 0, httperr.ErrValidation("invalid_amount")
	}
	return *amount, nil
}

// optionalDate parses s, or returns today in loc when s is empty.
func optionalDate(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return timezone.StartOfDay(now, loc), nil
	}
	t, err := timezone.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return t, nil
}
