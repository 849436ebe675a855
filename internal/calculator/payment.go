package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aanand-mishra/mortgage-api/internal/types"
)

const (
	monthsPerYear  = 12
	percentDivisor = 100

	// powPrecision bounds the number of decimal digits carried through
	// the compounding exponentiation. 28 digits keeps the final payment
	// stable well past the cent while keeping the coefficient small.
	powPrecision = 28
)

// ErrCalculation is returned when the arithmetic itself breaks down on
// pathological inputs. Callers must report it as a generic calculation
// error and never surface the underlying detail to the client.
var ErrCalculation = errors.New("mortgage calculation failed")

var one = decimal.NewFromInt(1)

// monthlyRate converts a nominal yearly percentage to a monthly rate:
// annualRate / 100 / 12.
func monthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.
		Div(decimal.NewFromInt(percentDivisor)).
		Div(decimal.NewFromInt(monthsPerYear))
}

// ComputeMonthlyPayment computes the fixed monthly payment that fully
// retires the loan over its term under compound interest:
//
//	M = P * r(1 + r)^n / ((1 + r)^n - 1)
//
// where P is the principal, r the monthly rate and n the number of
// payments. A zero rate cannot reach this code through Validate (the
// floor is 0.01%), but the branch is kept so a direct caller gets the
// straight-line division instead of a division by zero.
func ComputeMonthlyPayment(loan types.LoanRequest) (decimal.Decimal, error) {
	rate := monthlyRate(loan.AnnualRate)
	numPayments := decimal.NewFromInt(int64(loan.Years) * monthsPerYear)

	if rate.IsZero() {
		return loan.Principal.Div(numPayments), nil
	}

	factor, err := one.Add(rate).PowWithPrecision(numPayments, powPrecision)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrCalculation, err)
	}

	denominator := factor.Sub(one)
	if denominator.IsZero() || denominator.IsNegative() {
		return decimal.Decimal{}, ErrCalculation
	}

	return loan.Principal.Mul(rate).Mul(factor).Div(denominator), nil
}

// Calculate runs the full payment calculation for a validated loan.
//
// Totals use the product convention of the original form backend:
// totalPayment = monthlyPayment × 12 × years, taken from the UNROUNDED
// monthly payment — not the sum of the simulated schedule, which can
// differ by a few cents once monthly rounding accumulates. The schedule
// generator uses the same convention for cumulativePaid so both surfaces
// agree.
func Calculate(loan types.LoanRequest) (types.LoanResult, error) {
	monthly, err := ComputeMonthlyPayment(loan)
	if err != nil {
		return types.LoanResult{}, err
	}

	numPayments := decimal.NewFromInt(int64(loan.Years) * monthsPerYear)
	total := monthly.Mul(numPayments)

	return types.LoanResult{
		Principal:      loan.Principal,
		AnnualRate:     loan.AnnualRate,
		Years:          loan.Years,
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total.Sub(loan.Principal),
	}, nil
}
