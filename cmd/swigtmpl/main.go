// Command swigtmpl drives internal/template and internal/expand end to end
// against a JSON fixture, standing in for the parser + `%template` directive
// handling this module treats as an external collaborator (§1). It mirrors
// the teacher's cmd/morfx/demo driver: a Cobra root with one subcommand that
// loads fixture data, runs the pipeline, and reports a unified diff.
package main

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/diag"
	"github.com/MyroslavaStopets/swig/internal/expand"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/template"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var requestPath string

	root := &cobra.Command{
		Use:   "swigtmpl",
		Short: "Template instantiation core driver",
		Long:  "Locates and expands a C++ template instantiation against a JSON fixture describing the primary, its partials, and the requested arguments.",
	}

	expandCmd := &cobra.Command{
		Use:   "expand",
		Short: "Locate and expand one %template instantiation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, requestPath)
		},
	}
	expandCmd.Flags().StringVar(&requestPath, "request", "", "path to a fixture JSON file (required)")
	expandCmd.MarkFlagRequired("request")

	root.AddCommand(expandCmd)
	return root
}

func runExpand(cmd *cobra.Command, requestPath string) error {
	fixture, err := loadFixture(requestPath)
	if err != nil {
		return err
	}

	primary := buildNode(fixture.Primary)
	scope := symtab.NewScope("", nil)
	name := primary.Attr(ast.AttrName)
	if name == "" {
		return fmt.Errorf("fixture primary node has no \"name\" attribute")
	}
	scope.Declare(name, primary)

	instantiated := buildPreparedArgs(fixture.Request.Args)
	tparms := template.PrepareArgs(instantiated, primary)

	loc := diag.Location{File: requestPath}
	diags := &diag.Diagnostics{}
	locator := template.NewLocator()

	chosen, err := locator.Locate(template.Request{
		Name:     fixture.Request.Name,
		Parms:    tparms,
		Symname:  fixture.Request.Symname,
		Location: loc,
	}, scope, diags)
	if err != nil {
		return err
	}
	for _, d := range diags.Items {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", d.Message)
	}
	if chosen == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no new instantiation (request dropped)")
		return nil
	}

	before := dumpNode(chosen)

	clone := ast.CloneTree(chosen)
	rname := fixture.Request.Symname
	if err := expand.Expand(clone, primary, name, rname, tparms, scope, scope); err != nil {
		return err
	}

	after := dumpNode(clone)

	fmt.Fprintln(cmd.OutOrStdout(), after)

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: fixture.Request.Name,
		ToFile:   fixture.Request.Name + " (instantiated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return fmt.Errorf("building diff: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
