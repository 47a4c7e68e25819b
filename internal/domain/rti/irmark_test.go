package rti

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbedIRmarkReplacesPlaceholder(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())

	finished, mark, err := EmbedIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mark == "" {
		t.Fatal("expected non-empty mark")
	}
	if strings.Contains(finished, IRmarkPlaceholder) {
		t.Fatal("expected placeholder replaced")
	}
	if !strings.Contains(finished, `<IRmark Type="generic">`+mark+`</IRmark>`) {
		t.Fatal("expected mark embedded in document")
	}
}

func TestComputeIRmarkIdempotent(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())

	first, err := ComputeIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical marks, got %s and %s", first, second)
	}
}

func TestCanonicalBodyReproducedAfterEmbedding(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())

	before, err := CanonicalBody(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	finished, _, err := EmbedIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := CanonicalBody(finished)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != after {
		t.Fatal("expected canonical bytes unchanged by mark embedding")
	}
}

func TestCanonicalBodyAttachesEnvelopeNamespace(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())
	body, err := CanonicalBody(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(body, `<Body xmlns="`+EnvelopeNamespace+`">`) {
		t.Fatalf("expected namespace on body start tag, got %s", body[:80])
	}
	if strings.Contains(body, "<IRmark") {
		t.Fatal("expected IRmark element removed from canonical bytes")
	}
}

func TestCanonicalBodyStripsCarriageReturnEntities(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())
	mangled := strings.Replace(doc, "<PayId>", "&#xD;<PayId>", 1)

	clean, err := ComputeIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	normalized, err := ComputeIRmark(mangled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clean != normalized {
		t.Fatal("expected carriage-return entities not to affect the mark")
	}
}

func TestEmbedIRmarkWithoutPlaceholderFails(t *testing.T) {
	doc := buildTestDocument(FpsInput{}, testFpsEmployee())
	finished, _, err := EmbedIRmark(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := EmbedIRmark(finished); !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}
