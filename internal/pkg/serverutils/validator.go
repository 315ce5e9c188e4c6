package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateRequest(req any) error {
	return validate.Struct(req)
}

// fieldErrors turns validator output into "field" -> "reason" pairs.
func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[name] = "is required"
		case "oneof":
			out[name] = fmt.Sprintf("must be one of [%s]", fe.Param())
		case "min", "max":
			out[name] = fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
		default:
			out[name] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return out
}
