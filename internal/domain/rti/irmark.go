package rti

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// Matches the IRmark element whether it is the empty placeholder or already
// carries a computed mark, so the canonical bytes of a finished document
// equal those of the document it was computed from.
var irmarkElement = regexp.MustCompile(`<IRmark Type="generic">[^<]*</IRmark>`)

// The IRmark is a digest over a canonical subset of the document that
// excludes the mark element itself. Canonicalization and splicing are kept as
// two separate stages: ComputeIRmark derives the mark from the assembled
// document, EmbedIRmark replaces the placeholder in the original bytes.

// CanonicalBody extracts the hashable byte sequence: the Body element with
// the outer envelope namespace re-attached to its start tag, the IRmark
// element removed, and carriage-return entities stripped (transport
// normalization may introduce them and they must not affect the digest).
func CanonicalBody(doc string) (string, error) {
	namespace, err := envelopeNamespace(doc)
	if err != nil {
		return "", err
	}

	start := strings.Index(doc, "<Body>")
	end := strings.Index(doc, "</Body>")
	if start < 0 || end < 0 {
		return "", fmt.Errorf("no Body element: %w", ErrMalformedDocument)
	}
	body := doc[start : end+len("</Body>")]

	body = strings.Replace(body, "<Body>", `<Body xmlns="`+namespace+`">`, 1)
	body = irmarkElement.ReplaceAllString(body, "")
	body = strings.ReplaceAll(body, "&#xD;", "")
	return body, nil
}

func envelopeNamespace(doc string) (string, error) {
	open := strings.Index(doc, "<GovTalkMessage")
	if open < 0 {
		return "", fmt.Errorf("no GovTalkMessage element: %w", ErrMalformedDocument)
	}
	tagEnd := strings.Index(doc[open:], ">")
	if tagEnd < 0 {
		return "", fmt.Errorf("unterminated GovTalkMessage tag: %w", ErrMalformedDocument)
	}
	tag := doc[open : open+tagEnd]

	const marker = `xmlns="`
	nsStart := strings.Index(tag, marker)
	if nsStart < 0 {
		return "", fmt.Errorf("no envelope namespace: %w", ErrMalformedDocument)
	}
	rest := tag[nsStart+len(marker):]
	nsEnd := strings.Index(rest, `"`)
	if nsEnd < 0 {
		return "", fmt.Errorf("unterminated envelope namespace: %w", ErrMalformedDocument)
	}
	return rest[:nsEnd], nil
}

// ComputeIRmark hashes the canonical body with the schema-mandated digest
// (SHA-1) and returns the base64-encoded mark. Pure: identical documents
// yield identical marks.
func ComputeIRmark(doc string) (string, error) {
	body, err := CanonicalBody(doc)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(body))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// EmbedIRmark computes the mark over the assembled document and splices it
// into the placeholder, returning the finished document and the mark.
func EmbedIRmark(doc string) (string, string, error) {
	if !strings.Contains(doc, IRmarkPlaceholder) {
		return "", "", fmt.Errorf("no IRmark placeholder: %w", ErrMalformedDocument)
	}
	mark, err := ComputeIRmark(doc)
	if err != nil {
		return "", "", err
	}
	marked := `<IRmark Type="generic">` + mark + `</IRmark>`
	return strings.Replace(doc, IRmarkPlaceholder, marked, 1), mark, nil
}
