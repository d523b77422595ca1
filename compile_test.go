package shapecheck_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapecheck/shapecheck"
)

func schemaErrOf(t *testing.T, err error) *shapecheck.SchemaError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a schema error, got nil")
	}
	var serr *shapecheck.SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	return serr
}

func TestCompileRejectsBadRegex(t *testing.T) {
	serr := schemaErrOf(t, shapecheck.Compile(&shapecheck.String{Pattern: strp("[unclosed")}))
	if !strings.Contains(serr.Error(), "invalid regex") {
		t.Fatalf("expected a descriptive regex error, got %q", serr.Error())
	}
}

func TestCompileRejectsMinGreaterThanMax(t *testing.T) {
	serr := schemaErrOf(t, shapecheck.Compile(&shapecheck.Number{Min: int64p(10), Max: int64p(1)}))
	if !strings.Contains(serr.Error(), "min") {
		t.Fatalf("expected a min/max error, got %q", serr.Error())
	}
	// equal bounds are fine (inclusive)
	if err := shapecheck.Compile(&shapecheck.Number{Min: int64p(5), Max: int64p(5)}); err != nil {
		t.Fatalf("min == max must compile: %v", err)
	}
}

func TestCompileRejectsNilNodes(t *testing.T) {
	if err := shapecheck.Compile(nil); err == nil {
		t.Fatalf("nil root must not compile")
	}
	serr := schemaErrOf(t, shapecheck.Compile(&shapecheck.List{}))
	if !strings.Contains(serr.Error(), "element_type") {
		t.Fatalf("expected an element_type error, got %q", serr.Error())
	}
	serr = schemaErrOf(t, shapecheck.Compile(&shapecheck.Dict{
		Fields: map[string]shapecheck.Node{"a": nil},
	}))
	if !strings.Contains(serr.Path, "/fields/a") {
		t.Fatalf("expected the error to locate /fields/a, got %q", serr.Path)
	}
}

func TestCompileRejectsNegativeLimits(t *testing.T) {
	if err := shapecheck.Compile(&shapecheck.List{Element: &shapecheck.Boolean{}, Limit: intp(-1)}); err == nil {
		t.Fatalf("negative limit must not compile")
	}
	if err := shapecheck.Compile(&shapecheck.String{Length: intp(-1)}); err == nil {
		t.Fatalf("negative length must not compile")
	}
}

func TestCompileRejectsDuplicateCandidates(t *testing.T) {
	serr := schemaErrOf(t, shapecheck.Compile(&shapecheck.Literal{Candidate: []string{"a", "b", "a"}}))
	if !strings.Contains(serr.Error(), "duplicate") {
		t.Fatalf("expected a duplicate candidate error, got %q", serr.Error())
	}
}

func TestCompileLocatesNestedErrors(t *testing.T) {
	n := &shapecheck.Dict{Fields: map[string]shapecheck.Node{
		"items": &shapecheck.List{
			Element: &shapecheck.String{Pattern: strp("(")},
		},
	}}
	serr := schemaErrOf(t, shapecheck.Compile(n))
	want := "/fields/items/element_type"
	if serr.Path != want {
		t.Fatalf("expected error path %q, got %q", want, serr.Path)
	}
}

func TestCompiledPatternIsCached(t *testing.T) {
	n := &shapecheck.String{Pattern: strp("[0-9]{4}")}
	if err := shapecheck.Compile(n); err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := shapecheck.ValidateNode(n, "2024"); err != nil {
		t.Fatalf("compiled pattern should match: %v", err)
	}
	if err := shapecheck.ValidateNode(n, "20245"); err == nil {
		t.Fatalf("anchoring must reject a longer match")
	}
}
