package errors

import (
	"fmt"
	"strings"
)

// Operators lists the operator atoms of the language.
var Operators = []string{"AND", "OR", "NOT", "IF"}

// Literals lists the literal atoms of the language.
var Literals = []string{"T", "F"}

// SuggestOperator suggests an operator when an unknown head atom is used.
// It uses Levenshtein distance on the upper-cased name, so "and" and "ANDD"
// both suggest AND.
func SuggestOperator(unknown string) string {
	return suggestClosest(unknown, Operators, "Valid operators: ")
}

// SuggestLiteral suggests a literal when an unknown atom appears in operand
// position.
func SuggestLiteral(unknown string) string {
	return suggestClosest(unknown, Literals, "Valid literals: ")
}

// SuggestArity describes the operand count an operator expects.
func SuggestArity(operator string, want int) string {
	parts := make([]string, want)
	for i := range parts {
		parts[i] = fmt.Sprintf("e%d", i+1)
	}
	return fmt.Sprintf("Write (%s %s)", operator, strings.Join(parts, " "))
}

func suggestClosest(unknown string, valid []string, fallback string) string {
	if len(valid) == 0 {
		return ""
	}

	// Find the closest match
	candidate := strings.ToUpper(unknown)
	minDistance := 1000
	var bestMatch string

	for _, name := range valid {
		dist := levenshteinDistance(candidate, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable
	if minDistance <= 2 && minDistance < len(candidate) {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	return fallback + strings.Join(valid, ", ")
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	// Create distance matrix
	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	// Initialize first column and row
	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	// Compute distances
	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
