package schemayaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/schemajson"
	"github.com/shapecheck/shapecheck/schemayaml"
)

const yamlSchema = `
root:
  type: Dict
  fields:
    name:
      type: String
      length: 32
    role:
      type: Literal
      candidate: [admin, user]
    age:
      type: Number
      min: 0
      max: 150
      optional: true
validators:
  - team-policy
`

const jsonSchema = `{
  "root": {
    "type": "Dict",
    "fields": {
      "name": {"type": "String", "length": 32},
      "role": {"type": "Literal", "candidate": ["admin", "user"]},
      "age":  {"type": "Number", "min": 0, "max": 150, "optional": true}
    }
  },
  "validators": ["team-policy"]
}`

func TestDecode_YAMLSchema(t *testing.T) {
	s, err := schemayaml.Decode([]byte(yamlSchema))
	require.NoError(t, err)
	require.Equal(t, []string{"team-policy"}, s.Validators)

	root, ok := s.Root.(*shapecheck.Dict)
	require.True(t, ok, "root should be a Dict")
	require.Len(t, root.Fields, 3)

	doc, err := shapecheck.DecodeDocument([]byte(`{"name": "alice", "role": "admin"}`))
	require.NoError(t, err)
	assert.NoError(t, s.Validate(doc))

	bad, err := shapecheck.DecodeDocument([]byte(`{"name": "alice", "role": "root"}`))
	require.NoError(t, err)
	err = s.Validate(bad)
	iss, ok := shapecheck.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "/role", iss[0].Path)
	assert.Equal(t, shapecheck.CodeInvalidEnum, iss[0].Code)
}

func TestDecode_EquivalentToJSON(t *testing.T) {
	fromYAML, err := schemayaml.Decode([]byte(yamlSchema))
	require.NoError(t, err)
	fromJSON, err := schemajson.Decode([]byte(jsonSchema))
	require.NoError(t, err)

	// the normalized forms must agree byte for byte
	y, err := schemajson.Encode(fromYAML)
	require.NoError(t, err)
	j, err := schemajson.Encode(fromJSON)
	require.NoError(t, err)
	assert.JSONEq(t, string(j), string(y))
}

func TestDecode_MalformedYAML(t *testing.T) {
	_, err := schemayaml.Decode([]byte("root: [unterminated"))
	var serr *shapecheck.SchemaError
	require.ErrorAs(t, err, &serr)
}

func TestDecode_SchemaErrorsSurviveTheBridge(t *testing.T) {
	_, err := schemayaml.Decode([]byte(`
root:
  type: String
  regex: "[unclosed"
`))
	var serr *shapecheck.SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "invalid regex")
	assert.Equal(t, "/root", serr.Path)
}
