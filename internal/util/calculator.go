package util

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
)

var (
	numberPattern     = regexp.MustCompile(`^[0-9]*\.?[0-9]+$|^[0-9]+\.$`)
	expressionPattern = regexp.MustCompile(`^[0-9+\-*/.() ]+$`)
)

// EvaluateExpression evaluates an amount such as "12.50" or "19.99 * 2"
// and returns the result rounded to cents.
func EvaluateExpression(expr string) (decimal.Decimal, error) {
	cleanExpr := cleanCurrencyString(expr)
	if cleanExpr == "" {
		return decimal.Zero, fmt.Errorf("empty expression")
	}

	if isSimpleNumber(cleanExpr) {
		value, err := decimal.NewFromString(cleanExpr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid number format")
		}
		return value.Round(2), nil
	}

	if !expressionPattern.MatchString(cleanExpr) {
		return decimal.Zero, fmt.Errorf("invalid expression: contains non-mathematical characters")
	}

	expression, err := govaluate.NewEvaluableExpression(cleanExpr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid expression: %w", err)
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("evaluation error: %w", err)
	}

	var value decimal.Decimal
	switch v := result.(type) {
	case float64:
		if math.IsNaN(v) {
			return decimal.Zero, fmt.Errorf("result is not a number (NaN)")
		}
		if math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("result is infinite")
		}
		value = decimal.NewFromFloat(v)
	case int:
		value = decimal.NewFromInt(int64(v))
	case int64:
		value = decimal.NewFromInt(v)
	default:
		return decimal.Zero, fmt.Errorf("expression did not produce a number")
	}
	return value.Round(2), nil
}

// ParseAmount evaluates an entered amount and requires it to be positive.
// Failures are returned as validation errors for the amount field.
func ParseAmount(input string) (decimal.Decimal, error) {
	value, err := EvaluateExpression(input)
	if err != nil {
		return decimal.Zero, &core.ValidationError{
			Field: "amount",
			Value: strings.TrimSpace(input),
			Err:   fmt.Errorf("%w: %v", core.ErrInvalidAmount, err),
		}
	}
	if !value.IsPositive() {
		return decimal.Zero, &core.ValidationError{
			Field: "amount",
			Value: strings.TrimSpace(input),
			Err:   core.ErrNonPositiveAmount,
		}
	}
	return value, nil
}

// cleanCurrencyString removes currency symbols and thousands separators.
func cleanCurrencyString(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// isSimpleNumber reports whether s is an unsigned decimal number with no operators.
func isSimpleNumber(s string) bool {
	return numberPattern.MatchString(s)
}
