package rti

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
)

const namespaceBase = "http://www.govtalk.gov.uk/taxation/PAYE/RTI/FullPaymentSubmission/"

// fpsSchemaVersions maps a tax-year string to the published FPS schema
// version for that year. Review against the published schema list whenever a
// new tax year is added; do not fold into conditionals.
var fpsSchemaVersions = map[string]int{
	"18-19": 1,
	"19-20": 1,
	"20-21": 1,
	"21-22": 1,
	"22-23": 1,
	"23-24": 1,
	"24-25": 1,
	"25-26": 1,
	"26-27": 1,
}

var taxYearPattern = regexp.MustCompile(`^(\d{4})/(\d{2})$`)

// ResolveNamespace returns the FPS schema namespace for a tax-year string
// such as "25-26". Unknown years fall back to version 1 with a warning; the
// envelope shape is expected to hold for future years until published
// otherwise.
func ResolveNamespace(yearString string) string {
	version, ok := fpsSchemaVersions[yearString]
	if !ok {
		version = 1
		slog.Warn("unknown tax year for FPS namespace, using default schema version",
			"taxYear", yearString, "version", version)
	}
	return fmt.Sprintf("%s%s/%d", namespaceBase, yearString, version)
}

// TaxYearToYearString converts "2025/26" to "25-26".
func TaxYearToYearString(taxYear string) (string, error) {
	match := taxYearPattern.FindStringSubmatch(taxYear)
	if match == nil {
		return "", ErrMalformedTaxYear
	}
	start, _ := strconv.Atoi(match[1])
	end, _ := strconv.Atoi(match[2])
	if end != (start+1)%100 {
		return "", ErrMalformedTaxYear
	}
	return fmt.Sprintf("%02d-%02d", start%100, end), nil
}

// TaxYearStartYear returns the first calendar year of a "YYYY/YY" tax year.
func TaxYearStartYear(taxYear string) (int, error) {
	match := taxYearPattern.FindStringSubmatch(taxYear)
	if match == nil {
		return 0, ErrMalformedTaxYear
	}
	return strconv.Atoi(match[1])
}

// PeriodEndDate returns the tax year's period end, always 5 April of the
// second calendar year.
func PeriodEndDate(taxYear string) (string, error) {
	start, err := TaxYearStartYear(taxYear)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-04-05", start+1), nil
}
