package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	telegramIDRegex = regexp.MustCompile(`^-?[0-9]{1,20}$`)
	keyRegex        = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	registerOnce sync.Once
	registerErr  error
)

// RegisterBindingValidators adds the storefront tags to gin's validator:
//
//	telegramid: numeric telegram user id as a string
//	slugkey:    lowercase key made of [a-z0-9] groups separated by single dashes
func RegisterBindingValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register installs the custom tags and reports fields by their json (or form) name.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("telegramid", func(fl validator.FieldLevel) bool {
		return IsTelegramID(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("slugkey", func(fl validator.FieldLevel) bool {
		return IsKey(fl.Field().String())
	})
}

func IsTelegramID(s string) bool {
	return telegramIDRegex.MatchString(s)
}

func IsKey(s string) bool {
	return keyRegex.MatchString(s)
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
	}
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}
