// Package calculator is the mortgage computation engine: input
// validation, the closed-form monthly payment formula, and the
// year-by-year amortization schedule.
//
// Every function here is a pure function of its arguments — no storage,
// no clocks, no shared state. Given the same loan twice the engine
// produces the same bytes twice, which is the property the whole service
// is built around. All money math runs on shopspring decimals so that
// cent-level drift from binary floating point cannot creep in; rounding
// happens only at the wire boundary.
package calculator

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/aanand-mishra/mortgage-api/internal/types"
)

// suspiciousPatterns match markup, script, and SQL payloads that have no
// business inside a numeric form field. A match means the value is
// rejected outright; the raw text is never echoed back to the client so
// a payload cannot reach a log viewer or error banner intact.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script.*?>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<.*?>`),
	regexp.MustCompile("[;&|`$]"),
	regexp.MustCompile(`(?i)union\s+select`),
	regexp.MustCompile(`(?i)drop\s+table`),
	regexp.MustCompile(`(?i)insert\s+into`),
	regexp.MustCompile(`(?i)delete\s+from`),
}

// validate is the shared validator instance. go-playground/validator
// caches struct metadata internally, so one instance for the whole
// process is both the fast path and the recommended usage.
var validate = newValidator()

// newValidator builds a validator that understands the raw types.Field
// input type and the custom tags used on types.CalculateRequest.
func newValidator() *validator.Validate {
	v := validator.New()

	// Teach the validator to see a types.Field as its trimmed string
	// form. After this, "required" fails on blank input and the custom
	// validations below receive the submitted text.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if f, ok := field.Interface().(types.Field); ok {
			return f.String()
		}
		return nil
	}, types.Field(""))

	mustRegister(v, "safe", isSafe)
	mustRegister(v, "number", isNumber)
	mustRegister(v, "whole", isWhole)
	mustRegister(v, "dmin", atLeast)
	mustRegister(v, "dmax", atMost)

	return v
}

// mustRegister panics on registration failure. That can only happen for
// an empty tag name, i.e. a programming error caught at startup.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// isSafe implements the "safe" tag: the value contains none of the
// suspicious patterns.
func isSafe(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(value) {
			return false
		}
	}
	return true
}

// isNumber implements the "number" tag: the value parses as a decimal.
func isNumber(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}

// isWhole implements the "whole" tag: the value has no fractional part.
// Runs after "number", so the parse cannot fail here in practice; a
// parse failure still reports cleanly rather than panicking.
func isWhole(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsInteger()
}

// atLeast implements the "dmin" tag: value >= tag parameter, compared as
// decimals so that bounds like 0.01 are exact.
func atLeast(fl validator.FieldLevel) bool {
	bound := decimal.RequireFromString(fl.Param())
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(bound)
}

// atMost implements the "dmax" tag: value <= tag parameter.
func atMost(fl validator.FieldLevel) bool {
	bound := decimal.RequireFromString(fl.Param())
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.LessThanOrEqual(bound)
}

// Validate checks every field of the request and, on success, converts
// it into a LoanRequest ready for calculation.
//
// All fields are checked in one pass: a request with a bad principal AND
// a missing rate reports both problems, so the caller can show the user
// a complete list rather than one complaint per submission. The returned
// error is a validator.ValidationErrors; the response package translates
// it into user-facing messages.
func Validate(req types.CalculateRequest) (types.LoanRequest, error) {
	if err := validate.Struct(req); err != nil {
		return types.LoanRequest{}, err
	}

	// The parses below cannot fail: the "number" (and "whole") tags
	// already accepted each value.
	principal := decimal.RequireFromString(req.Principal.String())
	rate := decimal.RequireFromString(req.AnnualRate.String())
	years := decimal.RequireFromString(req.Years.String())

	return types.LoanRequest{
		Principal:  principal,
		AnnualRate: rate,
		Years:      int(years.IntPart()),
	}, nil
}
