package shapecheck

import (
	"sort"

	"github.com/shapecheck/shapecheck/i18n"
)

// Schema is the root container: a node tree plus the ids of named validators
// the surrounding system applies to the whole document. The ids are carried
// as data only; implementations live in a Registry owned by the caller.
type Schema struct {
	Root       Node
	Validators []string
}

// Compile checks the tree for schema-definition errors; see Compile.
func (s *Schema) Compile() error {
	return Compile(s.Root)
}

// Validate walks the document against the root node. It returns nil on
// conformance, Issues on document violations, and *SchemaError when the tree
// itself is misconfigured. Named validators are not consulted; use
// ValidateWith for that.
func (s *Schema) Validate(doc any, opts ...ValidateOpt) error {
	if s.Root == nil {
		return schemaErrf("", "nil root node")
	}
	return ValidateNode(s.Root, doc, opts...)
}

// ValidatorFunc is a named, externally registered validation rule applied to
// the whole document. Returning Issues keeps per-path reporting; any other
// error is wrapped into a business_rule issue at the document root.
type ValidatorFunc func(doc any) error

// Registry resolves validator ids referenced by Schema.Validators. The zero
// value is unusable; construct with NewRegistry.
type Registry struct {
	m map[string]ValidatorFunc
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]ValidatorFunc)}
}

// Register binds an id to a validator, replacing any previous binding.
func (r *Registry) Register(name string, fn ValidatorFunc) {
	r.m[name] = fn
}

func (r *Registry) Resolve(name string) (ValidatorFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.m[name]
	return fn, ok
}

// Names returns the registered ids in ascending order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	ns := make([]string, 0, len(r.m))
	for n := range r.m {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// ValidateWith runs structural validation and then every named validator the
// schema references, resolved through reg. An id missing from the registry is
// a *SchemaError: the schema references a rule the system does not provide,
// which is configuration, not document data.
func (s *Schema) ValidateWith(reg *Registry, doc any, opts ...ValidateOpt) error {
	structural := s.Validate(doc, opts...)
	if _, ok := AsIssues(structural); structural != nil && !ok {
		return structural
	}
	iss, _ := AsIssues(structural)

	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast && len(iss) > 0 {
		return iss
	}

	for _, name := range s.Validators {
		fn, ok := reg.Resolve(name)
		if !ok {
			return schemaErrf("", "unresolved validator %q", name)
		}
		err := fn(doc)
		if err == nil {
			continue
		}
		if more, ok := AsIssues(err); ok {
			iss = AppendIssues(iss, more...)
		} else {
			iss = AppendIssues(iss, Issue{
				Path:    "/",
				Code:    CodeBusinessRule,
				Message: i18n.T(CodeBusinessRule, nil),
				Hint:    err.Error(),
				Rule:    name,
			})
		}
		if opt.FailFast {
			break
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
