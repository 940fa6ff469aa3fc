package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gamassss/brevly/pkg/response"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("alias", validateAlias)
}

// Validate checks data against its validate tags. A field that fails
// reports every rule it breaks, in tag order, not only the first.
func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	err := validate.Struct(data)
	if err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []response.ValidationError{{Message: err.Error()}}
		}
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, fieldRuleErrors(data, fe)...)
		}
	}

	return validationErrors
}

// fieldRuleErrors re-runs each rule of the failed field on its own so the
// result lists all violations. A failed required rule is reported alone.
func fieldRuleErrors(data interface{}, fe validator.FieldError) []response.ValidationError {
	single := []response.ValidationError{{Field: fe.Field(), Message: getErrorMessage(fe.Field(), fe)}}

	structType := reflect.Indirect(reflect.ValueOf(data)).Type()
	sf, ok := structType.FieldByName(fe.StructField())
	if !ok || fe.Tag() == "required" {
		return single
	}

	var errs []response.ValidationError
	for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
		if rule == "" || rule == "omitempty" {
			continue
		}
		err := validate.Var(fe.Value(), rule)
		ruleErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			continue
		}
		for _, re := range ruleErrors {
			errs = append(errs, response.ValidationError{
				Field:   fe.Field(),
				Message: getErrorMessage(fe.Field(), re),
			})
		}
	}

	if len(errs) == 0 {
		return single
	}
	return errs
}

// Messages flattens validation errors into their messages, in field order.
func Messages(errs []response.ValidationError) []string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return messages
}

// FieldMessage renders a single field error with the same wording Validate
// uses, for errors produced by another validator instance such as gin's.
func FieldMessage(fe validator.FieldError) string {
	return getErrorMessage(fe.Field(), fe)
}

func IsAlias(alias string) bool {
	return aliasPattern.MatchString(alias)
}

func validateAlias(fl validator.FieldLevel) bool {
	return IsAlias(fl.Field().String())
}

func getErrorMessage(field string, err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return "Invalid URL format"
	case "uuid":
		return "Invalid ID format"
	case "alias":
		return "Shortened URL must contain only alphanumeric characters, hyphens, and underscores"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
