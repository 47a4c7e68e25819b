package rti

import (
	"fmt"
	"strings"

	"rti/internal/platform/config"
)

// IRmarkPlaceholder is the empty integrity-mark element the assembler emits.
// The mark computer removes it from the canonical bytes and later replaces it
// in the full document, so the assembler and the mark computer must agree on
// this exact string.
const IRmarkPlaceholder = `<IRmark Type="generic"></IRmark>`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// docBuilder accumulates the document line by line. The schema fixes element
// order, conditional inclusion and attribute rules, so the document is built
// explicitly rather than via struct-tag marshalling.
type docBuilder struct {
	buf   strings.Builder
	depth int
}

func (d *docBuilder) line(s string) {
	for i := 0; i < d.depth; i++ {
		d.buf.WriteString("  ")
	}
	d.buf.WriteString(s)
	d.buf.WriteString("\n")
}

func (d *docBuilder) open(name string) {
	d.line("<" + name + ">")
	d.depth++
}

func (d *docBuilder) openAttr(name, attrs string) {
	d.line("<" + name + " " + attrs + ">")
	d.depth++
}

func (d *docBuilder) close(name string) {
	d.depth--
	d.line("</" + name + ">")
}

func (d *docBuilder) el(name, value string) {
	d.line("<" + name + ">" + escapeXML(value) + "</" + name + ">")
}

func (d *docBuilder) elAttr(name, attrs, value string) {
	d.line("<" + name + " " + attrs + ">" + escapeXML(value) + "</" + name + ">")
}

// opt emits the element only when the value is present. The schema forbids
// empty elements for optional fields, so absent means omitted.
func (d *docBuilder) opt(name string, value *string) {
	if value != nil {
		d.el(name, *value)
	}
}

// BuildDocument serializes the full GovTalk envelope with an empty IRmark
// placeholder. Deterministic: the same inputs yield byte-identical output.
func BuildDocument(employer config.Employer, namespace, yearString, periodEnd string, input FpsInput, employees []FpsEmployee) string {
	d := &docBuilder{}
	d.buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")

	d.openAttr("GovTalkMessage", `xmlns="`+EnvelopeNamespace+`"`)
	d.el("EnvelopeVersion", EnvelopeVersion)

	d.open("Header")
	d.open("MessageDetails")
	d.el("Class", MessageClass)
	d.el("Qualifier", "request")
	d.el("Function", "submit")
	d.el("CorrelationID", "")
	d.el("Transformation", "XML")
	if employer.Live {
		d.el("GatewayTest", "0")
	} else {
		d.el("GatewayTest", "1")
	}
	d.close("MessageDetails")
	d.open("SenderDetails")
	d.open("IDAuthentication")
	d.el("SenderID", employer.SenderID)
	d.open("Authentication")
	d.el("Method", "clear")
	d.el("Role", "principal")
	d.el("Value", employer.SenderPassword)
	d.close("Authentication")
	d.close("IDAuthentication")
	d.close("SenderDetails")
	d.close("Header")

	d.open("GovTalkDetails")
	d.open("Keys")
	d.elAttr("Key", `Type="TaxOfficeNumber"`, employer.TaxOfficeNumber)
	d.elAttr("Key", `Type="TaxOfficeReference"`, employer.TaxOfficeReference)
	d.close("Keys")
	d.open("ChannelRouting")
	d.open("Channel")
	d.el("URI", employer.VendorID)
	d.el("Product", employer.ProductName)
	d.el("Version", employer.ProductVersion)
	d.close("Channel")
	d.close("ChannelRouting")
	d.close("GovTalkDetails")

	d.open("Body")
	d.openAttr("IRenvelope", `xmlns="`+namespace+`"`)

	d.open("IRheader")
	d.open("Keys")
	d.elAttr("Key", `Type="TaxOfficeNumber"`, employer.TaxOfficeNumber)
	d.elAttr("Key", `Type="TaxOfficeReference"`, employer.TaxOfficeReference)
	d.close("Keys")
	d.el("PeriodEnd", periodEnd)
	d.el("DefaultCurrency", DefaultCurrency)
	d.line(IRmarkPlaceholder)
	d.el("Sender", "Employer")
	d.close("IRheader")

	d.open("FullPaymentSubmission")
	d.open("EmpRefs")
	d.el("OfficeNo", employer.TaxOfficeNumber)
	d.el("PayeRef", employer.TaxOfficeReference)
	d.el("AORef", employer.AccountsOfficeReference)
	d.close("EmpRefs")
	d.el("RelatedTaxYear", yearString)

	for i := range employees {
		writeEmployee(d, &employees[i])
	}

	writeFinalSubmission(d, input)

	d.close("FullPaymentSubmission")
	d.close("IRenvelope")
	d.close("Body")
	d.close("GovTalkMessage")

	return d.buf.String()
}

func writeEmployee(d *docBuilder, e *FpsEmployee) {
	d.open("Employee")

	d.open("EmployeeDetails")
	d.el("NINO", e.NINO)
	d.open("Name")
	d.el("Fore", e.Forename)
	d.el("Sur", e.Surname)
	d.close("Name")
	d.open("Address")
	for i, addressLine := range e.AddressLines {
		if i == 4 {
			break
		}
		d.el("Line", addressLine)
	}
	d.el("UKPostcode", e.Postcode)
	d.close("Address")
	d.el("BirthDate", e.BirthDate)
	d.el("Gender", e.Gender)
	d.close("EmployeeDetails")

	d.open("Employment")

	if e.IsStarter {
		d.open("Starter")
		d.el("StartDate", e.StartDate)
		d.opt("StartDec", e.StarterDeclaration)
		d.close("Starter")
	}

	d.el("PayId", e.PayrollID)

	d.open("FiguresToDate")
	d.el("TaxablePay", e.TaxablePayYTD)
	d.el("TotalTax", e.TotalTaxYTD)
	d.opt("StudentLoansTD", e.StudentLoansYTD)
	d.opt("PostgradLoansTD", e.PostgradLoansYTD)
	d.opt("EmpeePenContribnsPaidYTD", e.PensionPaidYTD)
	d.opt("SMPYTD", e.SMPYTD)
	d.opt("SPPYTD", e.SPPYTD)
	d.opt("SAPYTD", e.SAPYTD)
	d.opt("ShPPYTD", e.ShPPYTD)
	d.close("FiguresToDate")

	d.open("Payment")
	d.el("PayFreq", "M1")
	d.el("PmtDate", e.PaymentDate)
	d.el("MonthNo", fmt.Sprintf("%d", e.MonthNumber))
	d.el("PeriodsCovered", "1")
	d.el("HoursWorked", e.HoursWorkedBand)
	if attrs := taxCodeAttrs(e); attrs != "" {
		d.elAttr("TaxCode", attrs, e.TaxCode)
	} else {
		d.el("TaxCode", e.TaxCode)
	}
	d.el("TaxablePay", e.TaxablePay)
	d.el("PayAfterStatDedns", e.NetPay)
	if e.StudentLoanRecovered != nil {
		d.elAttr("StudentLoanRecovered", `PlanType="`+e.StudentLoanPlan+`"`, *e.StudentLoanRecovered)
	}
	d.opt("PostgradLoanRecovered", e.PostgradLoanRecovered)
	d.el("TaxDeductedOrRefunded", e.TaxDeducted)
	d.opt("EmpeePenContribnsPaid", e.PensionPaid)
	d.close("Payment")

	if e.NICLetter != "" {
		d.open("NIlettersAndValues")
		d.el("NIletter", e.NICLetter)
		d.el("GrossEarningsForNICsInPd", e.GrossForNIC)
		d.el("GrossEarningsForNICsYTD", e.GrossForNICYTD)
		d.opt("AtLELYTD", e.AtLELYTD)
		d.opt("LELtoPTYTD", e.LELToPTYTD)
		d.opt("PTtoUELYTD", e.PTToUELYTD)
		d.el("TotalEmpNICInPd", e.TotalEmployerNIC)
		d.el("TotalEmpNICYTD", e.TotalEmployerNICYTD)
		d.el("EmpeeContribnsInPd", e.EmployeeNIC)
		d.el("EmpeeContribnsYTD", e.EmployeeNICYTD)
		d.close("NIlettersAndValues")
	}

	d.close("Employment")
	d.close("Employee")
}

func taxCodeAttrs(e *FpsEmployee) string {
	attrs := make([]string, 0, 2)
	if e.IsMonth1Basis {
		attrs = append(attrs, `BasisNonCumulative="yes"`)
	}
	if e.IsScottishTaxpayer {
		attrs = append(attrs, `TaxRegime="S"`)
	}
	return strings.Join(attrs, " ")
}

// writeFinalSubmission appends the scheme-cessation/year-end block. Each
// field is independently optional; the block is dropped when nothing in it
// would be set.
func writeFinalSubmission(d *docBuilder, input FpsInput) {
	ceased := input.SchemeCeased || input.DateSchemeCeased != ""
	if !input.FinalSubmission && !ceased && !input.FinalSubmissionForYear {
		return
	}
	d.open("FinalSubmission")
	if input.SchemeCeased {
		d.el("BecauseSchemeCeased", "yes")
	}
	if input.DateSchemeCeased != "" {
		d.el("DateSchemeCeased", input.DateSchemeCeased)
	}
	if input.FinalSubmissionForYear {
		d.el("ForYear", "yes")
	}
	d.close("FinalSubmission")
}
