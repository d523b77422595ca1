package shapecheck_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shapecheck/shapecheck"
)

func TestDecodeDocument(t *testing.T) {
	v, err := shapecheck.DecodeDocument([]byte(`{"n": 1.5, "s": "x", "b": true, "z": null, "a": [1]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", v)
	}
	if _, ok := obj["n"].(json.Number); !ok {
		t.Fatalf("numbers should decode as json.Number, got %T", obj["n"])
	}
	if obj["z"] != nil {
		t.Fatalf("null should decode as nil, got %v", obj["z"])
	}
}

func TestDecodeDocumentRejectsTrailingData(t *testing.T) {
	if _, err := shapecheck.DecodeDocument([]byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Fatalf("trailing value must be rejected")
	}
	if _, err := shapecheck.DecodeDocument([]byte(`true false`)); err == nil {
		t.Fatalf("trailing token must be rejected")
	}
}

func TestDecodeDocumentRejectsMalformedInput(t *testing.T) {
	if _, err := shapecheck.DecodeDocument([]byte(`{"a": `)); err == nil {
		t.Fatalf("malformed JSON must be rejected")
	}
}

func TestDecodeDocumentReader(t *testing.T) {
	v, err := shapecheck.DecodeDocumentReader(strings.NewReader(`[true, false]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("expected a 2-element array, got %#v", v)
	}
}
