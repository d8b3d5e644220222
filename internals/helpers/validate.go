package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct: jalankan tag `validate:` pada DTO; hasil berupa
// map field -> pesan untuk JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	out := map[string][]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], fe.Tag())
		}
		return out
	}
	out["_"] = []string{err.Error()}
	return out
}
