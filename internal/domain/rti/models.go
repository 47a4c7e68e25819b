package rti

import "time"

// PayrollResultRow is one finalized payroll result for an employee in a tax
// period, as stored. All money columns are minor units (pence). Optional YTD
// figures are pointers so that NULL ("not applicable") survives the read and
// is never confused with a genuine zero.
type PayrollResultRow struct {
	EmployeeID  string
	PaymentDate *time.Time

	TaxablePay    int64
	TaxablePayYTD int64
	IncomeTax     int64
	IncomeTaxYTD  int64
	NetPay        int64

	EmployeeNIC    int64
	EmployeeNICYTD int64
	EmployerNIC    int64
	EmployerNICYTD int64

	Pension    *int64
	PensionYTD *int64

	StudentLoan    int64
	StudentLoanYTD *int64

	GrossForNIC    int64
	GrossForNICYTD int64
	AtLELYTD       *int64
	LELToPTYTD     *int64
	PTToUELYTD     *int64

	SMPYTD  *int64
	SPPYTD  *int64
	SAPYTD  *int64
	ShPPYTD *int64
}

// EmployeeRow is the latest known master record for an employee.
type EmployeeRow struct {
	ID           string
	NINO         string
	Forename     string
	Surname      string
	AddressLines []string
	Postcode     string
	BirthDate    time.Time
	Gender       string

	TaxCode     string
	NICLetter   string
	Week1Month1 bool

	StudentLoanPlan *string
	HoursWorkedBand *string

	PayrollID string
	HireDate  *time.Time

	HasP45       bool
	P46Statement *string
}

// FpsEmployee is the canonical per-employee record the assembler consumes.
// It is built exactly once per payroll result row and never mutated. All
// money figures are major-unit strings with exactly two decimal places;
// optional figures are nil when not applicable, which the assembler renders
// as an omitted element.
type FpsEmployee struct {
	NINO         string
	Forename     string
	Surname      string
	AddressLines []string
	Postcode     string
	BirthDate    string
	Gender       string
	PayrollID    string

	TaxCode            string
	IsMonth1Basis      bool
	IsScottishTaxpayer bool

	IsStarter          bool
	StartDate          string
	StarterDeclaration *string

	PaymentDate     string
	MonthNumber     int
	HoursWorkedBand string

	TaxablePay    string
	TaxablePayYTD string
	TotalTaxYTD   string
	TaxDeducted   string
	NetPay        string

	PensionPaid    *string
	PensionPaidYTD *string

	StudentLoanPlan       string
	StudentLoanRecovered  *string
	PostgradLoanRecovered *string
	StudentLoansYTD       *string
	PostgradLoansYTD      *string

	// NICLetter is empty when the employee has no NIC category; the whole
	// NIlettersAndValues block is omitted in that case.
	NICLetter           string
	GrossForNIC         string
	GrossForNICYTD      string
	AtLELYTD            *string
	LELToPTYTD          *string
	PTToUELYTD          *string
	TotalEmployerNIC    string
	TotalEmployerNICYTD string
	EmployeeNIC         string
	EmployeeNICYTD      string

	SMPYTD  *string
	SPPYTD  *string
	SAPYTD  *string
	ShPPYTD *string
}

// FpsInput carries the request-scoped parameters for one submission build.
type FpsInput struct {
	CompanyID              string `json:"companyId"`
	TaxYear                string `json:"taxYear"`
	TaxPeriod              int    `json:"taxPeriod"`
	FinalSubmission        bool   `json:"finalSubmission,omitempty"`
	SchemeCeased           bool   `json:"schemeCeased,omitempty"`
	DateSchemeCeased       string `json:"dateSchemeCeased,omitempty"`
	FinalSubmissionForYear bool   `json:"finalSubmissionForYear,omitempty"`
}

// FpsResult is the finished submission plus metadata. IRmark is kept for
// logging and the confirmation PDF; it is already embedded in XML.
type FpsResult struct {
	XML           string    `json:"xml"`
	EmployeeCount int       `json:"employeeCount"`
	TaxYear       string    `json:"taxYear"`
	TaxPeriod     int       `json:"taxPeriod"`
	GeneratedAt   time.Time `json:"generatedAt"`
	IRmark        string    `json:"-"`
}

// TaxRefs are the per-company overrides for the employer's tax office
// identifiers. Empty fields mean "use the configured default".
type TaxRefs struct {
	TaxOfficeNumber         string
	TaxOfficeReference      string
	AccountsOfficeReference string
}
