// ABOUTME: Boundary validation for budget inputs and query parameters
// ABOUTME: Rejects malformed requests before they reach the combination calculator

package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/markalston/avatar-budget-analyzer/backend/models"
)

// ErrInvalidInput marks errors caused by the caller's input
var ErrInvalidInput = errors.New("invalid input")

// AllocationTolerance is how far the two allocation percentages may sum from 100
const AllocationTolerance = 0.01

// MaxPreviewMinutes bounds the voice preview query
const MaxPreviewMinutes = 1_000_000

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// sanitizeForLog removes control characters from strings to prevent log injection
// when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidateBudgetInput checks field ranges and that the allocation
// percentages sum to 100 within AllocationTolerance.
func ValidateBudgetInput(input models.BudgetInput) error {
	if err := validateStruct(input); err != nil {
		return err
	}
	if math.Abs(input.TotalAllocationPct()-100) > AllocationTolerance {
		return fmt.Errorf("%w: allocation percentages must sum to 100, got %.2f",
			ErrInvalidInput, input.TotalAllocationPct())
	}
	// Allocations must stay representable in JSON
	if math.IsInf(input.APIBudget(), 0) || math.IsInf(input.HostingBudget(), 0) {
		return fmt.Errorf("%w: monthly_budget %g is too large", ErrInvalidInput, input.MonthlyBudget)
	}
	return nil
}

// ValidateCombinationRequest validates the budget input and its filter
func ValidateCombinationRequest(req models.CombinationRequest) error {
	if err := ValidateBudgetInput(req.BudgetInput); err != nil {
		return err
	}
	return validateStruct(req.Filter)
}

// ParseMinutes parses a non-negative minute count from a query parameter
func ParseMinutes(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: minutes is required", ErrInvalidInput)
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid minutes: %s", ErrInvalidInput, sanitizeForLog(raw))
	}
	if minutes < 0 || minutes > MaxPreviewMinutes {
		return 0, fmt.Errorf("%w: minutes must be between 0 and %d", ErrInvalidInput, MaxPreviewMinutes)
	}
	return minutes, nil
}

func validateStruct(s any) error {
	err := inputValidator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
