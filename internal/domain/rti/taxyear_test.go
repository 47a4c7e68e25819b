package rti

import (
	"errors"
	"strings"
	"testing"
)

func TestTaxYearToYearString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025/26", "25-26"},
		{"2018/19", "18-19"},
		{"2099/00", "99-00"},
	}
	for _, tc := range cases {
		got, err := TaxYearToYearString(tc.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestTaxYearToYearStringRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2025-26", "25/26", "2025/27", "2025/2026", "abcd/ef"} {
		if _, err := TaxYearToYearString(in); !errors.Is(err, ErrMalformedTaxYear) {
			t.Fatalf("%q: expected ErrMalformedTaxYear, got %v", in, err)
		}
	}
}

func TestPeriodEndDate(t *testing.T) {
	got, err := PeriodEndDate("2025/26")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2026-04-05" {
		t.Fatalf("expected 2026-04-05, got %s", got)
	}
}

func TestResolveNamespaceKnownYear(t *testing.T) {
	ns := ResolveNamespace("25-26")
	if !strings.HasSuffix(ns, "/25-26/1") {
		t.Fatalf("unexpected namespace: %s", ns)
	}
}

func TestResolveNamespaceUnknownYearDefaults(t *testing.T) {
	first := ResolveNamespace("31-32")
	second := ResolveNamespace("31-32")
	if first != second {
		t.Fatalf("namespace resolution not deterministic: %s vs %s", first, second)
	}
	if !strings.HasSuffix(first, "/31-32/1") {
		t.Fatalf("expected default version 1, got %s", first)
	}
}
