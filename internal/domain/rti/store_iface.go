package rti

import "context"

// StoreAPI is the read contract against the payroll data store. The pipeline
// writes nothing back.
type StoreAPI interface {
	PayrollResultsForPeriod(ctx context.Context, companyID, taxYear string, taxPeriod int) ([]PayrollResultRow, error)
	EmployeesByIDs(ctx context.Context, companyID string, ids []string) (map[string]EmployeeRow, error)
	EmployeeIDsForPeriod(ctx context.Context, companyID, taxYear string, taxPeriod int) (map[string]struct{}, error)
	CompanyTaxRefs(ctx context.Context, companyID string) (TaxRefs, error)
}
