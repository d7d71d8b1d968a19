// Boolexpr reduces boolean s-expressions to True or False.
//
// Expressions use the forms T, F, (NOT e), (AND e1 e2), (OR e1 e2) and
// (IF c e1 e2).
//
// Usage:
//
//	# Reduce an expression
//	boolexpr eval "(AND (OR F T) (NOT F))"
//
//	# Show every rewrite
//	boolexpr eval --trace "(IF (NOT T) F T)"
//
//	# Check expression files without reducing them
//	boolexpr lint --dir exprs/
//
//	# Run golden suites
//	boolexpr test --suite cases.yaml
//
//	# Re-evaluate files on change and expose metrics
//	boolexpr watch --file exprs/ --metrics-addr 127.0.0.1:9464
package main

func main() {
	Execute()
}
