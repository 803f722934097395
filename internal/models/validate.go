package models

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

const (
	// PricePlaces is the number of decimal places a price may carry.
	PricePlaces = 2

	// priceDigits bounds the significant digits of a price so it survives a REAL column exactly.
	priceDigits = 15
)

// MaxPrice is the largest price a product may carry.
var MaxPrice = decimal.New(1, priceDigits-PricePlaces).Sub(decimal.New(1, -PricePlaces))

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Dates and decimals are validated through their text form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d := field.Interface().(Date)
		if d.IsZero() {
			return ""
		}
		return d.String()
	}, Date{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(decimal.Decimal).String()
	}, decimal.Decimal{})

	v.RegisterValidation("price", validatePrice)

	return v
}

// Validate checks entity against its struct tags and returns [ValidationErrors] on failure.
func Validate(entity any) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "price":
		return fmt.Sprintf("%s must be between 0 and %s with at most %d decimal places", field, MaxPrice.StringFixed(PricePlaces), PricePlaces)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// validatePrice accepts decimal text between 0 and [MaxPrice] with at most [PricePlaces] decimals
func validatePrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	if d.IsNegative() || d.GreaterThan(MaxPrice) {
		return false
	}
	return d.Equal(d.Truncate(PricePlaces))
}
