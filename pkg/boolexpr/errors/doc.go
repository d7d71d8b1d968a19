// Package errors provides rich error types for reading, translating and
// reducing boolean expressions.
//
// # Error Types
//
// ErrorTypeSyntax: the tree does not match one of the six forms
//
// ErrorTypeUnreducible: the reducer met a node outside the six variants
//
// ErrorTypeRead: malformed s-expression text or YAML
//
// ErrorTypeIO: file I/O errors
//
// # Basic Usage
//
// Match a category with the standard library:
//
//	if errors.Is(err, bxErrors.ErrInvalidSyntax) {
//	    // report the malformed tree
//	}
//
// Accumulate multiple errors:
//
//	errList := bxErrors.NewErrorList()
//	errList.AddError(bxErrors.ErrorTypeRead, "unclosed '('", pos)
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
//
// # Error Format
//
//	[syntax] AND expects 2 operands, got 1
//	  form: (AND T)
//	  at: OR[1]
//	  = suggestion: Write (AND e1 e2)
//
// # Suggestions
//
// Unknown operator atoms get a Levenshtein-based suggestion:
//
//	bxErrors.SuggestOperator("ANDD") // "Did you mean 'AND'?"
package errors
