package rti

import (
	"errors"
	"testing"
	"time"
)

func TestCleanTaxCode(t *testing.T) {
	cases := []struct {
		in       string
		want     string
		month1   bool
		scottish bool
	}{
		{"1257L", "1257L", false, false},
		{"1257l", "1257L", false, false},
		{"1257L/W1", "1257L", true, false},
		{"1257L-W1", "1257L", true, false},
		{"1257L/M1", "1257L", true, false},
		{"1257L-M1", "1257L", true, false},
		{"1257LM1", "1257L", true, false},
		{"1257LW1", "1257L", true, false},
		{"1257l/m1", "1257L", true, false},
		{"S1257L", "1257L", false, true},
		{"S1257L/M1", "1257L", true, true},
		{"s1257l-w1", "1257L", true, true},
		{"BR", "BR", false, false},
		{" K475 ", "K475", false, false},
	}
	for _, tc := range cases {
		clean, month1, scottish := CleanTaxCode(tc.in)
		if clean != tc.want || month1 != tc.month1 || scottish != tc.scottish {
			t.Fatalf("%q: expected (%q, %v, %v), got (%q, %v, %v)",
				tc.in, tc.want, tc.month1, tc.scottish, clean, month1, scottish)
		}
	}
}

func TestPenceToPounds(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{15000, "150.00"},
		{5, "0.05"},
		{0, "0.00"},
		{123456, "1234.56"},
		{-12345, "-123.45"},
	}
	for _, tc := range cases {
		if got := penceToPounds(tc.in); got != tc.want {
			t.Fatalf("%d: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestResolvePaymentDateDerivesLastDayOfPeriodMonth(t *testing.T) {
	cases := []struct {
		startYear int
		period    int
		want      string
	}{
		{2025, 1, "2025-04-30"},
		{2025, 6, "2025-09-30"},
		{2025, 9, "2025-12-31"},
		{2025, 10, "2026-01-31"},
		{2025, 12, "2026-03-31"},
		{2023, 11, "2024-02-29"}, // leap year
		{2024, 11, "2025-02-28"},
	}
	for _, tc := range cases {
		got := resolvePaymentDate(PayrollResultRow{}, tc.startYear, tc.period)
		if got != tc.want {
			t.Fatalf("year %d period %d: expected %s, got %s", tc.startYear, tc.period, tc.want, got)
		}
	}
}

func TestResolvePaymentDatePrefersExplicitDate(t *testing.T) {
	paid := time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)
	got := resolvePaymentDate(PayrollResultRow{PaymentDate: &paid}, 2025, 5)
	if got != "2025-08-22" {
		t.Fatalf("expected 2025-08-22, got %s", got)
	}
}

func baseEmployee(id string) EmployeeRow {
	return EmployeeRow{
		ID:        id,
		NINO:      "QQ123456C",
		Forename:  "Ada",
		Surname:   "Lovelace",
		Postcode:  "AB1 2CD",
		BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:    "F",
		TaxCode:   "1257L",
		NICLetter: "A",
		PayrollID: "EMP-001",
	}
}

func baseResult(id string) PayrollResultRow {
	return PayrollResultRow{
		EmployeeID:     id,
		TaxablePay:     250000,
		TaxablePayYTD:  1250000,
		IncomeTax:      40000,
		IncomeTaxYTD:   200000,
		NetPay:         195000,
		EmployeeNIC:    20000,
		EmployeeNICYTD: 100000,
		EmployerNIC:    27000,
		EmployerNICYTD: 135000,
		GrossForNIC:    250000,
		GrossForNICYTD: 1250000,
	}
}

func TestNormalizeStarterInPeriodOneRequiresHireDate(t *testing.T) {
	emp := baseEmployee("e1")
	out, err := NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].IsStarter {
		t.Fatal("expected no starter without hire date in period 1")
	}

	hired := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	emp.HireDate = &hired
	out, err = NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out[0].IsStarter || out[0].StartDate != "2025-04-10" {
		t.Fatalf("expected starter with start date 2025-04-10, got %+v", out[0])
	}
}

func TestNormalizeStarterByAbsenceFromPriorPeriod(t *testing.T) {
	hired := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC) // hired in period 2
	emp := baseEmployee("e1")
	emp.HireDate = &hired

	// Period 5, no result in period 4: a starter even though hired mid-year.
	prior := map[string]struct{}{"other": {}}
	out, err := NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, prior, 2025, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out[0].IsStarter {
		t.Fatal("expected starter when absent from prior period")
	}
	if out[0].StartDate != "2025-05-20" {
		t.Fatalf("expected hire date as start date, got %s", out[0].StartDate)
	}

	// Present in period 4: not a starter.
	prior["e1"] = struct{}{}
	out, err = NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, prior, 2025, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].IsStarter {
		t.Fatal("expected no starter when present in prior period")
	}
}

func TestNormalizeStarterDeclaration(t *testing.T) {
	hired := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	emp := baseEmployee("e1")
	emp.HireDate = &hired
	emp.HasP45 = true
	out, err := NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].StarterDeclaration != nil {
		t.Fatalf("expected nil declaration with P45, got %v", *out[0].StarterDeclaration)
	}

	statement := "B"
	emp.HasP45 = false
	emp.P46Statement = &statement
	out, _ = NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if out[0].StarterDeclaration == nil || *out[0].StarterDeclaration != "B" {
		t.Fatalf("expected declaration B, got %v", out[0].StarterDeclaration)
	}

	emp.P46Statement = nil
	out, _ = NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if out[0].StarterDeclaration == nil || *out[0].StarterDeclaration != "A" {
		t.Fatalf("expected default declaration A, got %v", out[0].StarterDeclaration)
	}
}

func TestNormalizeStudentLoanStandardPlan(t *testing.T) {
	plan := "1"
	emp := baseEmployee("e1")
	emp.StudentLoanPlan = &plan
	row := baseResult("e1")
	row.StudentLoan = 15000
	ytd := int64(90000)
	row.StudentLoanYTD = &ytd

	out, err := NormalizeEmployees([]PayrollResultRow{row},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := out[0]
	if e.StudentLoanRecovered == nil || *e.StudentLoanRecovered != "150.00" {
		t.Fatalf("expected studentLoanRecovered 150.00, got %v", e.StudentLoanRecovered)
	}
	if e.PostgradLoanRecovered != nil {
		t.Fatalf("expected nil postgradLoanRecovered, got %v", *e.PostgradLoanRecovered)
	}
	if e.StudentLoansYTD == nil || *e.StudentLoansYTD != "900.00" {
		t.Fatalf("expected studentLoansYTD 900.00, got %v", e.StudentLoansYTD)
	}
	if e.StudentLoanPlan != "01" {
		t.Fatalf("expected plan type 01, got %s", e.StudentLoanPlan)
	}
}

func TestNormalizeStudentLoanPostgraduatePlan(t *testing.T) {
	plan := "3"
	emp := baseEmployee("e1")
	emp.StudentLoanPlan = &plan
	row := baseResult("e1")
	row.StudentLoan = 8000
	ytd := int64(40000)
	row.StudentLoanYTD = &ytd

	out, _ := NormalizeEmployees([]PayrollResultRow{row},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	e := out[0]
	if e.PostgradLoanRecovered == nil || *e.PostgradLoanRecovered != "80.00" {
		t.Fatalf("expected postgradLoanRecovered 80.00, got %v", e.PostgradLoanRecovered)
	}
	if e.StudentLoanRecovered != nil {
		t.Fatalf("expected nil studentLoanRecovered, got %v", *e.StudentLoanRecovered)
	}
	if e.PostgradLoansYTD == nil || *e.PostgradLoansYTD != "400.00" {
		t.Fatalf("expected postgradLoansYTD 400.00, got %v", e.PostgradLoansYTD)
	}
}

func TestNormalizeStudentLoanNoPlanCarriesYTDOnly(t *testing.T) {
	emp := baseEmployee("e1")
	row := baseResult("e1")
	ytd := int64(30000)
	row.StudentLoanYTD = &ytd

	out, _ := NormalizeEmployees([]PayrollResultRow{row},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	e := out[0]
	if e.StudentLoanRecovered != nil || e.PostgradLoanRecovered != nil {
		t.Fatal("expected no recovery fields without a plan")
	}
	if e.StudentLoansYTD == nil || *e.StudentLoansYTD != "300.00" {
		t.Fatalf("expected YTD 300.00 carried, got %v", e.StudentLoansYTD)
	}
}

func TestNormalizeMissingEmployeeFailsBatch(t *testing.T) {
	rows := []PayrollResultRow{baseResult("e1"), baseResult("missing")}
	_, err := NormalizeEmployees(rows, map[string]EmployeeRow{"e1": baseEmployee("e1")}, nil, 2025, 1)
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestNormalizeNICPlaceholderAndOptionalYTD(t *testing.T) {
	emp := baseEmployee("e1")
	emp.NICLetter = "X"
	row := baseResult("e1")

	out, _ := NormalizeEmployees([]PayrollResultRow{row},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	e := out[0]
	if e.NICLetter != "" {
		t.Fatalf("expected empty NIC letter for placeholder, got %s", e.NICLetter)
	}
	if e.AtLELYTD != nil {
		t.Fatalf("expected nil AtLELYTD for absent figure, got %v", *e.AtLELYTD)
	}
}

func TestNormalizeWeek1Month1FlagForcesMonth1(t *testing.T) {
	emp := baseEmployee("e1")
	emp.Week1Month1 = true
	out, _ := NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if !out[0].IsMonth1Basis {
		t.Fatal("expected month-1 basis forced by employee flag")
	}
	if out[0].TaxCode != "1257L" {
		t.Fatalf("unexpected tax code %s", out[0].TaxCode)
	}
}

func TestNormalizeHoursBandDefaultsToOther(t *testing.T) {
	out, _ := NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": baseEmployee("e1")}, nil, 2025, 1)
	if out[0].HoursWorkedBand != HoursBandOther {
		t.Fatalf("expected band %s, got %s", HoursBandOther, out[0].HoursWorkedBand)
	}

	band := "B"
	emp := baseEmployee("e1")
	emp.HoursWorkedBand = &band
	out, _ = NormalizeEmployees([]PayrollResultRow{baseResult("e1")},
		map[string]EmployeeRow{"e1": emp}, nil, 2025, 1)
	if out[0].HoursWorkedBand != "B" {
		t.Fatalf("expected band B, got %s", out[0].HoursWorkedBand)
	}
}
