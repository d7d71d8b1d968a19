/*
Package suite loads and runs golden expression suites.

A suite is a YAML file of cases; each case gives an expression either as
s-expression text (expr) or as a YAML sequence (tree), and expects either a
literal (expect) or an error type (error):

	name: basics
	cases:
	  - name: nested
	    expr: "(AND (OR F T) (NOT F))"
	    expect: "True"
	  - name: yaml-tree
	    tree: [IF, T, F, T]
	    expect: "False"
	  - name: bad-arity
	    expr: "(AND T)"
	    error: syntax

Load reports every malformed case at once as a *errors.ErrorList. Run
executes the cases with an Interpreter and returns a Report, which
WriteJUnit renders for CI systems.
*/
package suite
