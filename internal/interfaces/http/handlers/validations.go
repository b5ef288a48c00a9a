package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/maida-inc/maida/internal/domain/shared/vo"
)

// RegisterValidations adds the domain-specific binding rules to gin's
// validator. Call once before routes are served.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("daycode", func(fl validator.FieldLevel) bool {
		_, err := vo.ParseWeekday(fl.Field().String())
		return err == nil
	})
}
