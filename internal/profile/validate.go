package profile

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"crypto-cluster-insights/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so errors match the table columns users see.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("finite", isFinite); err != nil {
		panic(err)
	}
	return v
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidateCoins checks every row against the coin schema.
// The first invalid row is returned as a *SchemaError with its 1-based row number.
func ValidateCoins(coins []*domain.Coin) error {
	for i, c := range coins {
		if c == nil {
			return &SchemaError{Row: i + 1, Column: "*", Reason: "missing row"}
		}
		if err := validate.Struct(c); err != nil {
			return schemaErrorFrom(i+1, err)
		}
	}
	return nil
}

func schemaErrorFrom(row int, err error) *SchemaError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &SchemaError{
			Row:    row,
			Column: fe.Field(),
			Reason: reasonFor(fe),
			Err:    err,
		}
	}
	return &SchemaError{Row: row, Column: "*", Reason: err.Error(), Err: err}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "finite":
		return fmt.Sprintf("not a finite number: %v", fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
