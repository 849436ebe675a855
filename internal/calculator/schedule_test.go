package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGenerateSchedule_ReferenceLoan(t *testing.T) {
	l := loan("300000", "6.5", 30)

	monthly, err := ComputeMonthlyPayment(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := GenerateSchedule(l, monthly)

	if len(schedule) != 30 {
		t.Fatalf("expected 30 years, got %d", len(schedule))
	}

	for i, year := range schedule {
		if year.Year != i+1 {
			t.Errorf("entry %d: expected year %d, got %d", i, i+1, year.Year)
		}
		if year.YearlyInterest.IsNegative() {
			t.Errorf("year %d: negative interest %s", year.Year, year.YearlyInterest)
		}
		if year.RemainingBalance.IsNegative() {
			t.Errorf("year %d: negative balance %s", year.Year, year.RemainingBalance)
		}
	}

	// The payment fully retires the loan, so the simulated principal
	// portions must sum back to the principal and the final balance must
	// land on zero, within accumulated division precision.
	principalSum := decimal.Zero
	for _, year := range schedule {
		principalSum = principalSum.Add(year.YearlyPrincipal)
	}
	assertApprox(t, "principal sum", principalSum, 300000, 0.01)

	final := schedule[len(schedule)-1]
	assertApprox(t, "final balance", final.RemainingBalance, 0, 0.01)
}

func TestGenerateSchedule_BalanceDecreasesEveryYear(t *testing.T) {
	l := loan("300000", "6.5", 30)

	monthly, err := ComputeMonthlyPayment(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	previous := l.Principal
	for _, year := range GenerateSchedule(l, monthly) {
		if !year.RemainingBalance.LessThan(previous) {
			t.Errorf("year %d: balance %s did not decrease from %s",
				year.Year, year.RemainingBalance, previous)
		}
		previous = year.RemainingBalance
	}
}

func TestGenerateSchedule_YearlySplitsAddUpToPayments(t *testing.T) {
	l := loan("250000", "4.25", 15)

	monthly, err := ComputeMonthlyPayment(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	yearOfPayments := monthly.Mul(decimal.NewFromInt(12))

	for _, year := range GenerateSchedule(l, monthly) {
		// Every month splits the payment exactly between interest and
		// principal, so the yearly sums must reassemble 12 payments —
		// decimal addition and subtraction are exact, so no tolerance.
		split := year.YearlyInterest.Add(year.YearlyPrincipal)
		if !split.Equal(yearOfPayments) {
			t.Errorf("year %d: interest+principal = %s, want %s",
				year.Year, split, yearOfPayments)
		}

		wantCumulative := yearOfPayments.Mul(decimal.NewFromInt(int64(year.Year)))
		if !year.CumulativePaid.Equal(wantCumulative) {
			t.Errorf("year %d: cumulativePaid = %s, want %s",
				year.Year, year.CumulativePaid, wantCumulative)
		}
	}
}

func TestGenerateSchedule_SingleYear(t *testing.T) {
	l := loan("12000", "12", 1)

	monthly, err := ComputeMonthlyPayment(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := GenerateSchedule(l, monthly)

	if len(schedule) != 1 {
		t.Fatalf("expected 1 year, got %d", len(schedule))
	}

	assertApprox(t, "final balance", schedule[0].RemainingBalance, 0, 0.01)
	assertApprox(t, "yearly principal", schedule[0].YearlyPrincipal, 12000, 0.01)
}

func TestGenerateSchedule_EarlyYearsAreInterestHeavy(t *testing.T) {
	// The defining shape of amortization: interest dominates early,
	// principal dominates late.
	l := loan("300000", "6.5", 30)

	monthly, err := ComputeMonthlyPayment(l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := GenerateSchedule(l, monthly)

	first := schedule[0]
	if !first.YearlyInterest.GreaterThan(first.YearlyPrincipal) {
		t.Errorf("year 1: expected interest %s > principal %s",
			first.YearlyInterest, first.YearlyPrincipal)
	}

	last := schedule[len(schedule)-1]
	if !last.YearlyPrincipal.GreaterThan(last.YearlyInterest) {
		t.Errorf("final year: expected principal %s > interest %s",
			last.YearlyPrincipal, last.YearlyInterest)
	}
}
