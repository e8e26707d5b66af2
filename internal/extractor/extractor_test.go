package extractor

import (
	"io"
	"net/url"
	"strings"
	"testing"
)

type stubExtractor struct{ name string }

func (s stubExtractor) Name() string { return s.name }

func (s stubExtractor) Extract(io.Reader, *url.URL) (string, error) { return s.name, nil }

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(stubExtractor{name: "paragraphs"}, stubExtractor{name: "readability"})

	got, err := reg.Resolve("readability")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Name() != "readability" {
		t.Fatalf("unexpected extractor: %s", got.Name())
	}

	if _, err := reg.Resolve("pdf"); err == nil {
		t.Fatalf("expected error for unknown extractor")
	} else if !strings.Contains(err.Error(), "paragraphs, readability") {
		t.Fatalf("error should list known extractors: %v", err)
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubExtractor{name: "a"})
	reg.Register(stubExtractor{name: "a"})

	if names := reg.Names(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	got := NormalizeSpace("  First line.\n\n\tSecond   line.  ")
	if got != "First line. Second line." {
		t.Fatalf("unexpected normalized text: %q", got)
	}
	if NormalizeSpace(" \n ") != "" {
		t.Fatalf("whitespace-only input must normalize to empty")
	}
}
