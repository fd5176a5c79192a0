package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"foodgram/internal/pkg/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonTagName)

	// gin binds with its own instance; report json names there too.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}

func jsonTagName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}

	errs := make(map[string]string)
	for _, e := range verrs {
		errs[e.Field()] = e.Tag()
	}
	return errs
}

// BindingError converts an error from gin's ShouldBind* into a validation
// error naming the first offending field.
func BindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return apperr.Wrap(apperr.Validation(jsonName(e), describe(e)), err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperr.Wrap(apperr.Validation(typeErr.Field, "invalid type, expected "+typeErr.Type.String()), err)
	}

	return apperr.Wrap(apperr.Validation("", "invalid request body"), err)
}

func jsonName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "email":
		return "must be a valid email address"
	default:
		return "failed " + e.Tag() + " validation"
	}
}
