package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type GoPlaygroundValidator struct {
	v *validator.Validate
}

var _ Validator = (*GoPlaygroundValidator)(nil)

func NewGoPlaygroundValidator() *GoPlaygroundValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// slug: lowercase letters and digits separated by single hyphens.
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &GoPlaygroundValidator{
		v: v,
	}
}

func (va *GoPlaygroundValidator) ValidateStruct(s any) map[string]string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return map[string]string{"": err.Error()}
	}

	errMap := make(map[string]string, len(valErrs))
	for _, e := range valErrs {
		errMap[e.Field()] = validationMessage(e)
	}

	return errMap
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func validationMessage(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if isNumber(e.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
	case "max":
		if isNumber(e.Kind()) {
			return fmt.Sprintf("%s must be at most %s", field, e.Param())
		}
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters long", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "eqfield":
		return fmt.Sprintf("%s should match %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color such as #1A2B3C", field)
	case "slug":
		return fmt.Sprintf("%s may only contain lowercase letters, numbers and hyphens", field)
	case "fqdn", "hostname":
		return fmt.Sprintf("%s must be a valid domain name", field)
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
