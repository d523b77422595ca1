// Command shapecheck validates JSON documents against a persisted schema.
//
//	shapecheck validate --schema schema.json document.json
//
// Exit codes: 0 conformant, 1 violations found, 2 load or schema errors.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shapecheck/shapecheck"
	"github.com/shapecheck/shapecheck/i18n"
	"github.com/shapecheck/shapecheck/schemajson"
	"github.com/shapecheck/shapecheck/schemayaml"
)

// errViolations marks a run that completed but found a non-conformant
// document, so main can exit 1 instead of 2.
var errViolations = errors.New("document does not conform to schema")

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, errViolations) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shapecheck",
		Short:         "Validate JSON documents against a declarative shape schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var schemaPath string
	var failFast bool
	var lang string

	cmd := &cobra.Command{
		Use:   "validate --schema <schema.json|yaml> <document.json>",
		Short: "Check one document against a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i18n.SetLanguage(lang)

			s, err := loadSchema(schemaPath)
			if err != nil {
				return err
			}
			docBytes, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := shapecheck.DecodeDocument(docBytes)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			err = s.Validate(doc, shapecheck.ValidateOpt{FailFast: failFast})
			if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			iss, ok := shapecheck.AsIssues(err)
			if !ok {
				return err
			}
			for _, it := range iss {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", it.Path, it.Code, it.Message)
			}
			return errViolations
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file, .json or .yaml/.yml")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first violation")
	cmd.Flags().StringVar(&lang, "lang", "en", "message language (en/ja)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func loadSchema(path string) (*shapecheck.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schemayaml.Decode(data)
	default:
		return schemajson.Decode(data)
	}
}
