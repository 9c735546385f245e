package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotelbooking/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("iso4217", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == 3 && strings.ToUpper(s) == s
	})
	_ = validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).Valid()
	})
}

// Validate returns field -> failed tag, or nil when v is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
