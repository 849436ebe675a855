package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aanand-mishra/mortgage-api/internal/types"
)

func loan(principal string, rate string, years int) types.LoanRequest {
	return types.LoanRequest{
		Principal:  decimal.RequireFromString(principal),
		AnnualRate: decimal.RequireFromString(rate),
		Years:      years,
	}
}

// assertApprox fails unless got is within tolerance of want.
func assertApprox(t *testing.T, name string, got decimal.Decimal, want, tolerance float64) {
	t.Helper()

	diff := got.Sub(decimal.NewFromFloat(want)).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(tolerance)) {
		t.Errorf("%s: expected %.2f ± %.2f, got %s", name, want, tolerance, got.StringFixed(4))
	}
}

func TestComputeMonthlyPayment_ReferenceLoan(t *testing.T) {
	// $300,000 at 6.5% over 30 years is the canonical textbook case:
	// the monthly payment comes to $1,896.20.
	monthly, err := ComputeMonthlyPayment(loan("300000", "6.5", 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertApprox(t, "monthly payment", monthly, 1896.20, 0.01)
}

func TestComputeMonthlyPayment_NearZeroRate(t *testing.T) {
	// At the 0.01% rate floor over one year the payment is principal/12
	// plus a sliver of interest.
	monthly, err := ComputeMonthlyPayment(loan("500000", "0.01", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	straightLine := decimal.RequireFromString("500000").Div(decimal.NewFromInt(12))

	if monthly.LessThan(straightLine) {
		t.Errorf("payment %s below straight-line %s", monthly, straightLine)
	}
	// ~$2.26 of interest spread over the year.
	assertApprox(t, "near-zero-rate payment", monthly, 41668.92, 0.05)
}

func TestComputeMonthlyPayment_ZeroRateBranch(t *testing.T) {
	// Unreachable through Validate (rate floor is 0.01) but the branch
	// must hold for direct callers.
	monthly, err := ComputeMonthlyPayment(loan("12000", "0", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !monthly.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected 1000, got %s", monthly)
	}
}

func TestCalculate_Totals(t *testing.T) {
	result, err := Calculate(loan("300000", "6.5", 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Product convention: total is the unrounded monthly times 12×years.
	wantTotal := result.MonthlyPayment.Mul(decimal.NewFromInt(360))
	if !result.TotalPayment.Equal(wantTotal) {
		t.Errorf("totalPayment %s != monthly × 360 = %s", result.TotalPayment, wantTotal)
	}

	wantInterest := result.TotalPayment.Sub(result.Principal)
	if !result.TotalInterest.Equal(wantInterest) {
		t.Errorf("totalInterest %s != total − principal = %s", result.TotalInterest, wantInterest)
	}

	assertApprox(t, "total payment", result.TotalPayment, 682633.47, 0.02)
	assertApprox(t, "total interest", result.TotalInterest, 382633.47, 0.02)
}

func TestCalculate_WithinBoundsAlwaysPositive(t *testing.T) {
	// Corners of the validated input space.
	loans := []types.LoanRequest{
		loan("1000", "0.01", 1),
		loan("1000", "50", 50),
		loan("10000000", "0.01", 1),
		loan("10000000", "50", 50),
	}

	for _, l := range loans {
		result, err := Calculate(l)
		if err != nil {
			t.Fatalf("loan %s/%s/%d: unexpected error: %v", l.Principal, l.AnnualRate, l.Years, err)
		}

		if !result.MonthlyPayment.IsPositive() {
			t.Errorf("loan %s/%s/%d: non-positive payment %s",
				l.Principal, l.AnnualRate, l.Years, result.MonthlyPayment)
		}
		if result.TotalInterest.IsNegative() {
			t.Errorf("loan %s/%s/%d: negative interest %s",
				l.Principal, l.AnnualRate, l.Years, result.TotalInterest)
		}
	}
}
