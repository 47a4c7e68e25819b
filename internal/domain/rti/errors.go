package rti

import "errors"

var (
	ErrMissingCompanyID  = errors.New("companyId is required")
	ErrMalformedTaxYear  = errors.New("tax year must be in YYYY/YY format")
	ErrInvalidTaxPeriod  = errors.New("tax period must be between 1 and 12")
	ErrNoPayrollResults  = errors.New("no payroll results for the requested period")
	ErrEmployeeNotFound  = errors.New("payroll result has no matching employee record")
	ErrMalformedDocument = errors.New("assembled document is missing a required marker")
)
