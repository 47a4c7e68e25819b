package rti

import (
	"fmt"
	"strings"
	"time"
)

// CleanTaxCode uppercases and trims a stored tax code, strips a week1/month1
// suffix ("/W1", "-W1", "/M1", "-M1" or a bare trailing "W1"/"M1") and then a
// Scottish "S" prefix. Suffix stripping runs first: a code can carry both
// markers and the prefix check must see the code without its suffix.
func CleanTaxCode(code string) (clean string, month1 bool, scottish bool) {
	clean = strings.ToUpper(strings.TrimSpace(code))

	for _, suffix := range []string{"/W1", "-W1", "/M1", "-M1", "W1", "M1"} {
		if strings.HasSuffix(clean, suffix) {
			clean = strings.TrimSpace(strings.TrimSuffix(clean, suffix))
			month1 = true
			break
		}
	}

	if strings.HasPrefix(clean, "S") {
		clean = clean[1:]
		scottish = true
	}
	return clean, month1, scottish
}

// penceToPounds converts a minor-unit amount to a major-unit string with
// exactly two decimal places. This is the single conversion point; the
// assembler never touches minor units.
func penceToPounds(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s%d.%02d", sign, pence/100, pence%100)
}

func optPounds(pence *int64) *string {
	if pence == nil {
		return nil
	}
	s := penceToPounds(*pence)
	return &s
}

// periodMonth maps a tax period to its calendar year and month. Period 1 is
// April of the tax year's first calendar year; periods 10-12 roll into the
// second.
func periodMonth(startYear, taxPeriod int) (year int, month time.Month) {
	month = time.Month((taxPeriod+2)%12 + 1)
	year = startYear
	if taxPeriod >= 10 {
		year++
	}
	return year, month
}

// lastDayOfMonth relies on time.Date normalizing day 0 of the following
// month, which handles 28/29/30/31-day months including leap years.
func lastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func resolvePaymentDate(row PayrollResultRow, startYear, taxPeriod int) string {
	if row.PaymentDate != nil {
		return row.PaymentDate.Format("2006-01-02")
	}
	year, month := periodMonth(startYear, taxPeriod)
	return lastDayOfMonth(year, month).Format("2006-01-02")
}

// isStarter reports whether an employee newly appears in payroll output this
// period. In period 1 there is no prior period to compare against, so a
// recorded hire date decides; from period 2 on, absence from the prior
// period's result set decides, which also catches mid-year additions.
func isStarter(taxPeriod int, emp EmployeeRow, priorPeriodIDs map[string]struct{}) bool {
	if taxPeriod == 1 {
		return emp.HireDate != nil
	}
	_, paidLastPeriod := priorPeriodIDs[emp.ID]
	return !paidLastPeriod
}

// starterDeclaration is nil when a P45 was supplied; otherwise the stored P46
// statement, defaulting to "A".
func starterDeclaration(emp EmployeeRow) *string {
	if emp.HasP45 {
		return nil
	}
	declaration := StarterDeclarationDefault
	if emp.P46Statement != nil && *emp.P46Statement != "" {
		declaration = *emp.P46Statement
	}
	return &declaration
}

// NormalizeEmployees merges each payroll result row with its employee master
// row into one canonical FpsEmployee. A result row without a matching
// employee row fails the whole batch; a submission must not silently omit or
// misrepresent an employee.
func NormalizeEmployees(rows []PayrollResultRow, employees map[string]EmployeeRow, priorPeriodIDs map[string]struct{}, startYear, taxPeriod int) ([]FpsEmployee, error) {
	out := make([]FpsEmployee, 0, len(rows))
	for _, row := range rows {
		emp, ok := employees[row.EmployeeID]
		if !ok {
			return nil, fmt.Errorf("employee %s: %w", row.EmployeeID, ErrEmployeeNotFound)
		}
		out = append(out, normalizeEmployee(row, emp, priorPeriodIDs, startYear, taxPeriod))
	}
	return out, nil
}

func normalizeEmployee(row PayrollResultRow, emp EmployeeRow, priorPeriodIDs map[string]struct{}, startYear, taxPeriod int) FpsEmployee {
	taxCode, month1, scottish := CleanTaxCode(emp.TaxCode)

	e := FpsEmployee{
		NINO:         strings.ToUpper(strings.TrimSpace(emp.NINO)),
		Forename:     emp.Forename,
		Surname:      emp.Surname,
		AddressLines: emp.AddressLines,
		Postcode:     emp.Postcode,
		BirthDate:    emp.BirthDate.Format("2006-01-02"),
		Gender:       emp.Gender,
		PayrollID:    emp.PayrollID,

		TaxCode:            taxCode,
		IsMonth1Basis:      month1 || emp.Week1Month1,
		IsScottishTaxpayer: scottish,

		PaymentDate: resolvePaymentDate(row, startYear, taxPeriod),
		MonthNumber: taxPeriod,

		TaxablePay:    penceToPounds(row.TaxablePay),
		TaxablePayYTD: penceToPounds(row.TaxablePayYTD),
		TotalTaxYTD:   penceToPounds(row.IncomeTaxYTD),
		TaxDeducted:   penceToPounds(row.IncomeTax),
		NetPay:        penceToPounds(row.NetPay),

		PensionPaid:    optPounds(row.Pension),
		PensionPaidYTD: optPounds(row.PensionYTD),

		GrossForNIC:         penceToPounds(row.GrossForNIC),
		GrossForNICYTD:      penceToPounds(row.GrossForNICYTD),
		AtLELYTD:            optPounds(row.AtLELYTD),
		LELToPTYTD:          optPounds(row.LELToPTYTD),
		PTToUELYTD:          optPounds(row.PTToUELYTD),
		TotalEmployerNIC:    penceToPounds(row.EmployerNIC),
		TotalEmployerNICYTD: penceToPounds(row.EmployerNICYTD),
		EmployeeNIC:         penceToPounds(row.EmployeeNIC),
		EmployeeNICYTD:      penceToPounds(row.EmployeeNICYTD),

		SMPYTD:  optPounds(row.SMPYTD),
		SPPYTD:  optPounds(row.SPPYTD),
		SAPYTD:  optPounds(row.SAPYTD),
		ShPPYTD: optPounds(row.ShPPYTD),
	}

	if letter := strings.ToUpper(strings.TrimSpace(emp.NICLetter)); letter != "" && letter != NICLetterNone {
		e.NICLetter = letter
	}

	e.HoursWorkedBand = HoursBandOther
	if emp.HoursWorkedBand != nil && *emp.HoursWorkedBand != "" {
		e.HoursWorkedBand = *emp.HoursWorkedBand
	}

	if isStarter(taxPeriod, emp, priorPeriodIDs) {
		e.IsStarter = true
		e.StarterDeclaration = starterDeclaration(emp)
		if emp.HireDate != nil {
			e.StartDate = emp.HireDate.Format("2006-01-02")
		} else {
			// Detected by absence from the prior period with no hire date on
			// record; the first day of the pay period stands in.
			year, month := periodMonth(startYear, taxPeriod)
			e.StartDate = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		}
	}

	applyStudentLoan(&e, row, emp)
	return e
}

// applyStudentLoan fills at most one of the two recovery fields. Plan 3 is a
// postgraduate loan; everything else is a standard plan. With no plan or a
// zero period amount, no recovery field is emitted but a nonzero YTD figure
// still carries.
func applyStudentLoan(e *FpsEmployee, row PayrollResultRow, emp EmployeeRow) {
	if emp.StudentLoanPlan == nil || row.StudentLoan == 0 {
		if row.StudentLoanYTD != nil && *row.StudentLoanYTD != 0 {
			e.StudentLoansYTD = optPounds(row.StudentLoanYTD)
		}
		return
	}

	amount := penceToPounds(row.StudentLoan)
	if *emp.StudentLoanPlan == PlanPostgraduate {
		e.PostgradLoanRecovered = &amount
		e.PostgradLoansYTD = optPounds(row.StudentLoanYTD)
		return
	}

	plan := *emp.StudentLoanPlan
	if len(plan) == 1 {
		plan = "0" + plan
	}
	e.StudentLoanPlan = plan
	e.StudentLoanRecovered = &amount
	e.StudentLoansYTD = optPounds(row.StudentLoanYTD)
}
