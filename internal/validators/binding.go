package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/timezone"
)

// RegisterBindings adds the custom rules used in request structs:
//
//	paymentdate  date-only or timestamp string accepted by timezone.ParseDate
//	looseemail   syntactically valid bare email address
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("paymentdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := timezone.ParseDate(s, time.UTC)
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
}
