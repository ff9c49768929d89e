package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/craftroots/artisan-api/sms"
)

// RegisterValidators installs custom rules on gin's validator engine.
// "inphone" accepts Indian mobile numbers in any common formatting.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		_, err := sms.NormalizePhone(fl.Field().String())
		return err == nil
	})
}
