// Package cql compiles a domain.FilterSpec into a CQL query for the
// overheid.nl SRU endpoint.
package cql

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jonesrussell/overheid-search/internal/domain"
)

// MatchAll is sent when no clause applies. The endpoint rejects empty queries.
const MatchAll = "cql.allRecords=1"

// CQL indexes used by the compiler.
const (
	indexText         = "cql.textAndIndexes"
	indexProductArea  = "c.product-area"
	indexType         = "dt.type"
	indexCreator      = "dt.creator"
	indexAuthority    = "ot.authority"
	indexSpatial      = "dt.spatial"
	indexMunicipality = "w.gemeentenaam"
	indexProvince     = "w.provincienaam"
)

var postcodePattern = regexp.MustCompile(`(?i)^\d{4}\s?[A-Z]{2}$`)

// Compile turns spec into a CQL query. It never returns an empty string.
//
// Clause order is fixed: free text, wrapped by the collection, then document
// type, organization, date range, location and facet filters, each joined
// with AND.
func Compile(spec domain.FilterSpec) string {
	query := textClause(spec.FreeText)

	if domain.IsSet(spec.Collection) {
		collection := equals(indexProductArea, spec.Collection)
		if query == "" {
			query = collection
		} else {
			query = collection + " AND (" + query + ")"
		}
	}

	clauses := []string{query}
	if domain.IsSet(spec.DocumentType) {
		clauses = append(clauses, equals(indexType, spec.DocumentType))
	}
	if domain.IsSet(spec.Organization) {
		clauses = append(clauses, "("+equals(indexCreator, spec.Organization)+" OR "+equals(indexAuthority, spec.Organization)+")")
	}
	clauses = append(clauses,
		dateClause(spec.DateType, spec.StartDate, spec.EndDate),
		locationClause(spec.Location),
	)
	for _, index := range spec.FacetIndexes() {
		clauses = append(clauses, facetClause(index, spec.FacetFilters[index]))
	}

	compiled := joinNonEmpty(clauses, " AND ")
	if compiled == "" {
		return MatchAll
	}
	return compiled
}

// textClause picks the free-text operator: adj for phrases, all for
// several words, = for a single term.
func textClause(raw string) string {
	text := normalizeText(raw)
	if text == "" {
		return ""
	}

	if strings.Contains(text, `"`) {
		phrase := normalizeText(strings.ReplaceAll(text, `"`, ""))
		if phrase == "" {
			return ""
		}
		return indexText + " adj " + quote(phrase)
	}
	if strings.Contains(text, " ") {
		return indexText + " all " + quote(text)
	}
	return indexText + "=" + quote(text)
}

// DateField maps a DateType to the index a date range compares against.
func DateField(dt domain.DateType) string {
	switch dt {
	case domain.DateTypeIssued:
		return "dt.issued"
	case domain.DateTypeAvailable:
		return "dt.available"
	case domain.DateTypeModified:
		return "dt.modified"
	default:
		return "dt.date"
	}
}

func dateClause(dt domain.DateType, start, end string) string {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	field := DateField(dt)

	switch {
	case start != "" && end != "":
		return "(" + field + ">=" + quote(start) + " AND " + field + "<=" + quote(end) + ")"
	case start != "":
		return field + ">=" + quote(start)
	case end != "":
		return field + "<=" + quote(end)
	default:
		return ""
	}
}

// locationClause searches by postcode containment for Dutch postcodes and
// across the place-name fields otherwise.
func locationClause(raw string) string {
	location := normalizeText(raw)
	if location == "" {
		return ""
	}

	if postcodePattern.MatchString(location) {
		postcode := quote(strings.ToUpper(strings.ReplaceAll(location, " ", "")))
		return "(" + indexSpatial + " within /postcode " + postcode +
			" OR " + indexCreator + " within /postcode " + postcode + ")"
	}

	value := quote(location)
	return "(" + indexSpatial + "=" + value +
		" OR " + indexCreator + "=" + value +
		" OR " + indexMunicipality + "=" + value +
		" OR " + indexProvince + "=" + value + ")"
}

func facetClause(index string, values []string) string {
	if !domain.ValidFacetIndex(index) {
		return ""
	}

	terms := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		terms = append(terms, equals(index, v))
	}
	if len(terms) == 0 {
		return ""
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

func equals(index, value string) string {
	return index + "==" + quote(strings.TrimSpace(norm.NFC.String(value)))
}

// quote wraps value in double quotes, escaping backslashes and quotes.
func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// normalizeText trims, NFC-normalizes and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
