package sru

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

// Element names of the searchRetrieveResponse envelope.
const (
	ElemResponse        = "sru:searchRetrieveResponse"
	ElemNumberOfRecords = "sru:numberOfRecords"
	ElemRecords         = "sru:records"
	ElemRecord          = "sru:record"
	ElemRecordData      = "sru:recordData"
	ElemDiagnostics     = "sru:diagnostics"
	ElemDiagnostic      = "diag:diagnostic"
	ElemExtraData       = "sru:extraResponseData"
	ElemFacetedResults  = "sru:facetedResults"
	ElemFacet           = "facet:facet"
	ElemFacetTerm       = "facet:term"
)

// RepeatableElements are the envelope elements that may occur more than
// once under one parent.
var RepeatableElements = []string{ElemRecord, ElemFacet, ElemFacetTerm, ElemDiagnostic}

// NewParser returns an xmltree parser configured for SRU envelopes.
func NewParser() *xmltree.Parser {
	return xmltree.NewParser(RepeatableElements...)
}

// DiagnosticError is a diagnostic reported by the SRU service in place of
// results.
type DiagnosticError struct {
	Code    string
	Message string
	Details string
}

func (e *DiagnosticError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("sru diagnostic %s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("sru diagnostic %s: %s", e.Code, e.Message)
}

// Diagnostic defaults used when the service leaves fields empty.
const (
	UnknownDiagnosticCode    = "UNKNOWN"
	UnknownDiagnosticMessage = "Unknown API error"
)

// Envelope is the decoded top level of a searchRetrieveResponse.
type Envelope struct {
	Root            *xmltree.Node
	NumberOfRecords int
	Records         []*xmltree.Node
	Facets          []*xmltree.Node
}

// ReadEnvelope parses data. Malformed XML yields *xmltree.ParseError; an
// envelope carrying diagnostics yields *DiagnosticError, while an empty
// sru:diagnostics element is ignored. A document with a different root
// element reads as an empty result.
func ReadEnvelope(data []byte) (*Envelope, error) {
	root, err := NewParser().Parse(data)
	if err != nil {
		return nil, err
	}

	env := &Envelope{Root: root}
	if root.Name != ElemResponse {
		return env, nil
	}

	if diags := root.Child(ElemDiagnostics); reportsDiagnostic(diags) {
		return nil, NewDiagnosticError(diags.Child(ElemDiagnostic))
	}

	env.NumberOfRecords = atoi(root.ChildText(ElemNumberOfRecords))
	env.Records = root.Path(ElemRecords).All(ElemRecord)
	env.Facets = root.Path(ElemExtraData, ElemFacetedResults).All(ElemFacet)
	return env, nil
}

// reportsDiagnostic is false for a missing or empty sru:diagnostics element.
func reportsDiagnostic(diags *xmltree.Node) bool {
	if diags == nil {
		return false
	}
	return diags.Child(ElemDiagnostic) != nil || strings.TrimSpace(diags.Text) != ""
}

// NewDiagnosticError reads a diag:diagnostic element. A nil node yields the
// unknown diagnostic.
func NewDiagnosticError(diag *xmltree.Node) *DiagnosticError {
	e := &DiagnosticError{
		Code:    diag.ChildText("diag:code"),
		Message: diag.ChildText("diag:message"),
		Details: diag.ChildText("diag:details"),
	}
	// Older envelopes carry the code as diag:uri.
	if e.Code == "" {
		e.Code = diag.ChildText("diag:uri")
	}
	if e.Code == "" {
		e.Code = UnknownDiagnosticCode
	}
	if e.Message == "" {
		e.Message = UnknownDiagnosticMessage
	}
	return e
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
