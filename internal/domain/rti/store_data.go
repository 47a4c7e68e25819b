package rti

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) PayrollResultsForPeriod(ctx context.Context, companyID, taxYear string, taxPeriod int) ([]PayrollResultRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, payment_date,
           taxable_pay, taxable_pay_ytd, income_tax, income_tax_ytd, net_pay,
           employee_nic, employee_nic_ytd, employer_nic, employer_nic_ytd,
           pension, pension_ytd,
           COALESCE(student_loan, 0), student_loan_ytd,
           gross_for_nic, gross_for_nic_ytd,
           at_lel_ytd, lel_to_pt_ytd, pt_to_uel_ytd,
           smp_ytd, spp_ytd, sap_ytd, shpp_ytd
    FROM payroll_results
    WHERE company_id = $1 AND tax_year = $2 AND tax_period = $3
    ORDER BY employee_id
  `, companyID, taxYear, taxPeriod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []PayrollResultRow
	for rows.Next() {
		var r PayrollResultRow
		if err := rows.Scan(
			&r.EmployeeID, &r.PaymentDate,
			&r.TaxablePay, &r.TaxablePayYTD, &r.IncomeTax, &r.IncomeTaxYTD, &r.NetPay,
			&r.EmployeeNIC, &r.EmployeeNICYTD, &r.EmployerNIC, &r.EmployerNICYTD,
			&r.Pension, &r.PensionYTD,
			&r.StudentLoan, &r.StudentLoanYTD,
			&r.GrossForNIC, &r.GrossForNICYTD,
			&r.AtLELYTD, &r.LELToPTYTD, &r.PTToUELYTD,
			&r.SMPYTD, &r.SPPYTD, &r.SAPYTD, &r.ShPPYTD,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Store) EmployeesByIDs(ctx context.Context, companyID string, ids []string) (map[string]EmployeeRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, nino, first_name, last_name,
           COALESCE(address_line1, ''), COALESCE(address_line2, ''),
           COALESCE(address_line3, ''), COALESCE(address_line4, ''),
           COALESCE(postcode, ''),
           birth_date, gender, tax_code,
           COALESCE(nic_letter, ''), week1_month1,
           student_loan_plan, hours_worked_band,
           payroll_id, hire_date, has_p45, p46_statement
    FROM employees
    WHERE company_id = $1 AND id = ANY($2)
  `, companyID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make(map[string]EmployeeRow, len(ids))
	for rows.Next() {
		var e EmployeeRow
		var line1, line2, line3, line4 string
		if err := rows.Scan(
			&e.ID, &e.NINO, &e.Forename, &e.Surname,
			&line1, &line2, &line3, &line4,
			&e.Postcode,
			&e.BirthDate, &e.Gender, &e.TaxCode,
			&e.NICLetter, &e.Week1Month1,
			&e.StudentLoanPlan, &e.HoursWorkedBand,
			&e.PayrollID, &e.HireDate, &e.HasP45, &e.P46Statement,
		); err != nil {
			return nil, err
		}
		for _, line := range []string{line1, line2, line3, line4} {
			if strings.TrimSpace(line) != "" {
				e.AddressLines = append(e.AddressLines, line)
			}
		}
		employees[e.ID] = e
	}
	return employees, rows.Err()
}

func (s *Store) EmployeeIDsForPeriod(ctx context.Context, companyID, taxYear string, taxPeriod int) (map[string]struct{}, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id
    FROM payroll_results
    WHERE company_id = $1 AND tax_year = $2 AND tax_period = $3
  `, companyID, taxYear, taxPeriod)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *Store) CompanyTaxRefs(ctx context.Context, companyID string) (TaxRefs, error) {
	var refs TaxRefs
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(tax_office_number, ''),
           COALESCE(tax_office_reference, ''),
           COALESCE(accounts_office_reference, '')
    FROM companies
    WHERE id = $1
  `, companyID).Scan(&refs.TaxOfficeNumber, &refs.TaxOfficeReference, &refs.AccountsOfficeReference)
	if err != nil {
		return TaxRefs{}, err
	}
	return refs, nil
}
