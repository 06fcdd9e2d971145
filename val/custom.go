package val

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rise-and-shine/bucketfs/vpath"
)

// Custom validation tags.
const (
	// TagVPath accepts a virtual path: no leading separator, no empty inner segment, no "." or "..".
	TagVPath = "vpath"

	// TagVPrefix accepts the root ("") or a virtual path ending with a separator.
	TagVPrefix = "vprefix"
)

//nolint:gochecknoglobals // registered once by newValidator
var customValidations = map[string]validator.Func{
	TagVPath: func(fl validator.FieldLevel) bool {
		return IsVirtualPath(fl.Field().String())
	},
	TagVPrefix: func(fl validator.FieldLevel) bool {
		return IsVirtualPrefix(fl.Field().String())
	},
}

// IsVirtualPath reports whether path can address an object or folder.
// A single trailing separator is allowed.
func IsVirtualPath(path string) bool {
	return vpath.IsValid(path)
}

// IsVirtualPrefix reports whether path can be listed as a directory.
func IsVirtualPrefix(path string) bool {
	return path == "" || (strings.HasSuffix(path, vpath.Separator) && vpath.IsValid(path))
}
