package rti

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"rti/internal/platform/config"
)

type Service struct {
	store    StoreAPI
	employer config.Employer
}

func NewService(store StoreAPI, employer config.Employer) *Service {
	return &Service{store: store, employer: employer}
}

// GenerateFPS runs the whole pipeline for one request: validate, fetch,
// normalize, assemble, mark. Any failure aborts; there is no partial output.
func (s *Service) GenerateFPS(ctx context.Context, input FpsInput) (*FpsResult, error) {
	if strings.TrimSpace(input.CompanyID) == "" {
		return nil, ErrMissingCompanyID
	}
	if input.TaxPeriod < 1 || input.TaxPeriod > 12 {
		return nil, ErrInvalidTaxPeriod
	}
	yearString, err := TaxYearToYearString(input.TaxYear)
	if err != nil {
		return nil, err
	}
	startYear, err := TaxYearStartYear(input.TaxYear)
	if err != nil {
		return nil, err
	}
	periodEnd, err := PeriodEndDate(input.TaxYear)
	if err != nil {
		return nil, err
	}
	namespace := ResolveNamespace(yearString)

	results, err := s.store.PayrollResultsForPeriod(ctx, input.CompanyID, input.TaxYear, input.TaxPeriod)
	if err != nil {
		return nil, fmt.Errorf("fetch payroll results: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoPayrollResults
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.EmployeeID)
	}

	// Employee rows, the prior-period id set and the company overrides are
	// independent reads; all must land before normalization starts.
	var (
		employees      map[string]EmployeeRow
		priorPeriodIDs map[string]struct{}
		refs           TaxRefs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.store.EmployeesByIDs(gctx, input.CompanyID, ids)
		if err != nil {
			return fmt.Errorf("fetch employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if input.TaxPeriod == 1 {
			return nil
		}
		var err error
		priorPeriodIDs, err = s.store.EmployeeIDsForPeriod(gctx, input.CompanyID, input.TaxYear, input.TaxPeriod-1)
		if err != nil {
			return fmt.Errorf("fetch prior period ids: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		refs, err = s.store.CompanyTaxRefs(gctx, input.CompanyID)
		if err != nil {
			return fmt.Errorf("fetch company tax refs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	normalized, err := NormalizeEmployees(results, employees, priorPeriodIDs, startYear, input.TaxPeriod)
	if err != nil {
		return nil, err
	}

	employer := s.employer.WithTaxRefs(refs.TaxOfficeNumber, refs.TaxOfficeReference, refs.AccountsOfficeReference)
	doc := BuildDocument(employer, namespace, yearString, periodEnd, input, normalized)

	finished, mark, err := EmbedIRmark(doc)
	if err != nil {
		return nil, err
	}

	return &FpsResult{
		XML:           finished,
		EmployeeCount: len(normalized),
		TaxYear:       input.TaxYear,
		TaxPeriod:     input.TaxPeriod,
		GeneratedAt:   time.Now().UTC(),
		IRmark:        mark,
	}, nil
}
