package sru_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/internal/sru"
	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestReadEnvelope(t *testing.T) {
	t.Parallel()

	env, err := sru.ReadEnvelope(readFixture(t, "searchretrieve.xml"))
	require.NoError(t, err)

	assert.Equal(t, 105, env.NumberOfRecords)
	assert.Len(t, env.Records, 3)
	assert.Len(t, env.Facets, 4)
	assert.Equal(t, "dt.type", env.Facets[0].ChildText("facet:index"))
}

func TestReadEnvelope_Diagnostic(t *testing.T) {
	t.Parallel()

	_, err := sru.ReadEnvelope(readFixture(t, "diagnostic.xml"))

	var diag *sru.DiagnosticError
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, "info:srw/diagnostic/1/10", diag.Code)
	assert.Equal(t, "Query syntax error", diag.Message)
	assert.Equal(t, "cql.textAndIndexes adj", diag.Details)
}

func TestReadEnvelope_EmptyDiagnosticsKeepsRecords(t *testing.T) {
	t.Parallel()

	env, err := sru.ReadEnvelope([]byte(`<sru:searchRetrieveResponse>` +
		`<sru:numberOfRecords>1</sru:numberOfRecords>` +
		`<sru:records><sru:record/></sru:records>` +
		`<sru:diagnostics/>` +
		`</sru:searchRetrieveResponse>`))
	require.NoError(t, err)

	assert.Equal(t, 1, env.NumberOfRecords)
	assert.Len(t, env.Records, 1)
}

func TestReadEnvelope_DiagnosticsWithoutDetailIsUnknown(t *testing.T) {
	t.Parallel()

	_, err := sru.ReadEnvelope([]byte(`<sru:searchRetrieveResponse><sru:diagnostics>failed</sru:diagnostics></sru:searchRetrieveResponse>`))

	var diag *sru.DiagnosticError
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, sru.UnknownDiagnosticCode, diag.Code)
	assert.Equal(t, sru.UnknownDiagnosticMessage, diag.Message)
}

func TestReadEnvelope_MalformedXML(t *testing.T) {
	t.Parallel()

	_, err := sru.ReadEnvelope([]byte(`<sru:searchRetrieveResponse><sru:records>`))

	var parseErr *xmltree.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestReadEnvelope_UnexpectedRootIsEmpty(t *testing.T) {
	t.Parallel()

	env, err := sru.ReadEnvelope([]byte(`<explainResponse><version>2.0</version></explainResponse>`))
	require.NoError(t, err)

	assert.Zero(t, env.NumberOfRecords)
	assert.Empty(t, env.Records)
	assert.Empty(t, env.Facets)
}

func TestReadEnvelope_BadCountIsZero(t *testing.T) {
	t.Parallel()

	env, err := sru.ReadEnvelope([]byte(`<sru:searchRetrieveResponse><sru:numberOfRecords>many</sru:numberOfRecords></sru:searchRetrieveResponse>`))
	require.NoError(t, err)
	assert.Zero(t, env.NumberOfRecords)
}
