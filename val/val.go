// Package val validates request schemas and reports failures as errx validation errors.
package val

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(getTagName)

	for tag, fn := range customValidations {
		if err := v.RegisterValidation(tag, fn, true); err != nil {
			panic("[val]: failed to register " + tag + ": " + err.Error())
		}
	}
	return v
}

// getTagName names a field after its json or query tag, falling back to the Go name.
func getTagName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tagName), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}
