// Package shapecheck decides whether a JSON-like document conforms to a
// declarative schema tree.
//
//   - A closed schema model of six node variants (Dict/List/String/Literal/Boolean/Number)
//     with shared optional/nullable modifiers and per-variant constraints
//   - A pure, recursive validation engine with a stable error model via
//     Issues (JSON Pointer, code, message) instead of a bare pass/fail
//   - A strict split between document violations (Issues) and schema
//     misconfiguration (*SchemaError), the latter rejected at Compile time
//   - A registry hook for named, externally implemented validators
//
// Design policy:
//   - Keep the public API in the root package; put format loaders under
//     schemajson/ and schemayaml/, the HTTP layer under middleware/, and the
//     CLI under cmd/shapecheck.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s, err := schemajson.Decode(schemaBytes)
//	doc, err := shapecheck.DecodeDocument(docBytes)
//	if err := s.Validate(doc); err != nil {
//		iss, _ := shapecheck.AsIssues(err)
//		// report iss
//	}
//
// A compiled schema tree is immutable and safe to share across concurrent
// Validate calls.
package shapecheck
