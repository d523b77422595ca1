package shapecheck

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// DecodeDocument parses JSON text into the document value tree the engine
// consumes: map[string]any, []any, string, json.Number, bool and nil.
// Numbers stay as json.Number so bounds checks see the source text.
func DecodeDocument(data []byte) (any, error) {
	return DecodeDocumentReader(bytes.NewReader(data))
}

// DecodeDocumentReader is DecodeDocument over a stream. Trailing non-space
// content after the first value is rejected.
func DecodeDocumentReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, errors.New("trailing data after document")
	}
	return v, nil
}
