// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, the calculator, and utils can all import types without
// depending on each other.
package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Field is a raw, untrusted form input as it arrived over the wire.
//
// Browsers (and attackers) send loan parameters as JSON numbers, quoted
// strings, or nothing at all. Converting eagerly to a numeric type would
// throw away the submitted text before the validator has had a chance to
// look at it — and the validator needs the text to detect blank values
// and markup/script payloads. So Field keeps the trimmed textual form of
// whatever was submitted and defers numeric conversion to the validator.
type Field string

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
// Anything else (objects, arrays, booleans) is kept verbatim and will
// fail the numeric validation later.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if string(data) == "null" {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(strings.TrimSpace(s))
		return nil
	}

	*f = Field(strings.TrimSpace(string(data)))
	return nil
}

// String returns the trimmed textual form of the submitted value.
func (f Field) String() string { return string(f) }

// CalculateRequest is the wire shape of a calculation request.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field is read from the request body
//     (camelCase names match the browser-side form contract).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. Beyond the built-in "required", the tags are custom
//     validations registered by the calculator package:
//
//     safe    — no markup/script/SQL-looking content
//     number  — parses as a decimal number
//     whole   — integral (no fractional part)
//     dmin    — decimal lower bound (inclusive)
//     dmax    — decimal upper bound (inclusive)
//
// Tags are evaluated left to right and stop at the first failure per
// field, so a blank field reports "required" only, never a confusing
// pile of follow-on messages.
type CalculateRequest struct {
	Principal  Field `json:"principal"  validate:"required,safe,number,dmin=1000,dmax=10000000"`
	AnnualRate Field `json:"annualRate" validate:"required,safe,number,dmin=0.01,dmax=50"`
	Years      Field `json:"years"      validate:"required,safe,number,whole,dmin=1,dmax=50"`
}

// LoanRequest is a fully validated loan. Construct it only through
// calculator.Validate — code holding a LoanRequest may assume every
// bound documented on CalculateRequest.
type LoanRequest struct {
	Principal  decimal.Decimal // loan amount, 1000 .. 10,000,000
	AnnualRate decimal.Decimal // nominal yearly rate in percent, 0.01 .. 50
	Years      int             // term, 1 .. 50
}

// LoanResult is the outcome of one payment calculation. All money values
// stay as decimals at full precision; rounding happens only when a result
// is converted to a wire response.
type LoanResult struct {
	Principal      decimal.Decimal
	AnnualRate     decimal.Decimal
	Years          int
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
	TotalInterest  decimal.Decimal
}

// AmortizationYear is one year of the amortization schedule: how much of
// that year's payments went to interest vs. principal, and where the
// balance stood at year end.
type AmortizationYear struct {
	Year             int
	RemainingBalance decimal.Decimal
	YearlyInterest   decimal.Decimal
	YearlyPrincipal  decimal.Decimal
	CumulativePaid   decimal.Decimal
}

// CalculateResponse is the wire shape of a successful calculation.
// Money values are rounded to cents here and nowhere earlier.
type CalculateResponse struct {
	Success        bool    `json:"success"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annualRate"`
	Years          int     `json:"years"`
}

// NewCalculateResponse converts a LoanResult to its wire shape.
func NewCalculateResponse(res LoanResult) CalculateResponse {
	return CalculateResponse{
		Success:        true,
		MonthlyPayment: cents(res.MonthlyPayment),
		TotalPayment:   cents(res.TotalPayment),
		TotalInterest:  cents(res.TotalInterest),
		Principal:      cents(res.Principal),
		AnnualRate:     res.AnnualRate.InexactFloat64(),
		Years:          res.Years,
	}
}

// ScheduleYear is the wire shape of one AmortizationYear.
type ScheduleYear struct {
	Year             int     `json:"year"`
	RemainingBalance float64 `json:"remainingBalance"`
	YearlyInterest   float64 `json:"yearlyInterest"`
	YearlyPrincipal  float64 `json:"yearlyPrincipal"`
	CumulativePaid   float64 `json:"cumulativePaid"`
}

// ScheduleResponse is the wire shape of a schedule request: the same
// summary fields as CalculateResponse plus the year-by-year breakdown.
type ScheduleResponse struct {
	CalculateResponse
	Schedule []ScheduleYear `json:"schedule"`
}

// NewScheduleResponse converts a LoanResult and its schedule to the wire
// shape.
func NewScheduleResponse(res LoanResult, schedule []AmortizationYear) ScheduleResponse {
	years := make([]ScheduleYear, 0, len(schedule))
	for _, y := range schedule {
		years = append(years, ScheduleYear{
			Year:             y.Year,
			RemainingBalance: cents(y.RemainingBalance),
			YearlyInterest:   cents(y.YearlyInterest),
			YearlyPrincipal:  cents(y.YearlyPrincipal),
			CumulativePaid:   cents(y.CumulativePaid),
		})
	}
	return ScheduleResponse{
		CalculateResponse: NewCalculateResponse(res),
		Schedule:          years,
	}
}

// cents rounds a decimal to two places and converts it for JSON output.
func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
