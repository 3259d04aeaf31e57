package cql

import (
	"regexp"
	"strings"
)

const maxComplexity = 10

var (
	operatorPattern    = regexp.MustCompile(`(?i)AND|OR|NOT`)
	fieldSearchPattern = regexp.MustCompile(`\w+\.\w+=`)
)

// Complexity scores a compiled query from 1 to 10 by counting boolean
// operators, quoted phrases and fielded searches.
func Complexity(query string) int {
	if query == "" {
		return 0
	}

	score := 1
	score += len(operatorPattern.FindAllStringIndex(query, -1))
	score += strings.Count(query, `"`) / 2
	score += len(fieldSearchPattern.FindAllStringIndex(query, -1))

	return min(score, maxComplexity)
}
