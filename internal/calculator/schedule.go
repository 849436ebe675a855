package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/aanand-mishra/mortgage-api/internal/types"
)

// GenerateSchedule re-derives the year-by-year amortization breakdown by
// simulating the loan month by month: each month's interest is the
// running balance times the monthly rate, the rest of the payment
// retires principal.
//
// This is deliberately a simulation rather than a closed-form per-year
// formula: the month loop is the form that survives loan variants with
// partial final years. Fixed-term mortgages always divide into whole
// years, so every year here runs exactly 12 months, bounded at 50 × 12
// iterations total.
//
// The result has exactly loan.Years entries, ordered by year ascending.
// There is no failure path: callers only reach this after a successful
// Calculate, so the inputs are already known-good.
func GenerateSchedule(loan types.LoanRequest, monthlyPayment decimal.Decimal) []types.AmortizationYear {
	rate := monthlyRate(loan.AnnualRate)
	monthlyPayments := decimal.NewFromInt(monthsPerYear)

	balance := loan.Principal
	schedule := make([]types.AmortizationYear, 0, loan.Years)

	for year := 1; year <= loan.Years; year++ {
		yearlyInterest := decimal.Zero
		yearlyPrincipal := decimal.Zero

		for month := 0; month < monthsPerYear; month++ {
			interest := balance.Mul(rate)
			principalPortion := monthlyPayment.Sub(interest)

			yearlyInterest = yearlyInterest.Add(interest)
			yearlyPrincipal = yearlyPrincipal.Add(principalPortion)
			balance = balance.Sub(principalPortion)
		}

		// The last year can dip a hair below zero from accumulated
		// division precision; clamp so the balance never reads negative.
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		schedule = append(schedule, types.AmortizationYear{
			Year:             year,
			RemainingBalance: balance,
			YearlyInterest:   yearlyInterest,
			YearlyPrincipal:  yearlyPrincipal,
			CumulativePaid:   monthlyPayment.Mul(monthlyPayments).Mul(decimal.NewFromInt(int64(year))),
		})
	}

	return schedule
}
