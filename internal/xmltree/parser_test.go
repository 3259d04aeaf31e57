package xmltree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/overheid-search/internal/xmltree"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<sru:searchRetrieveResponse xmlns:sru="http://docs.oasis-open.org/ns/search-ws/sruResponse">
  <sru:numberOfRecords>2</sru:numberOfRecords>
  <sru:records>
    <sru:record><sru:recordPosition>1</sru:recordPosition></sru:record>
  </sru:records>
  <sru:echo lang="nl">Wet &amp; Besluit <![CDATA[<b>x</b>]]></sru:echo>
</sru:searchRetrieveResponse>`

func newParser() *xmltree.Parser {
	return xmltree.NewParser("sru:record", "facet:facet", "facet:term")
}

func TestParse_KeepsPrefixedNames(t *testing.T) {
	t.Parallel()

	root, err := newParser().Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "sru:searchRetrieveResponse", root.Name)
	assert.Equal(t, "2", root.Child("sru:numberOfRecords").Text)
	assert.Equal(t, "http://docs.oasis-open.org/ns/search-ws/sruResponse", root.Attr("xmlns:sru"))

	records := root.Path("sru:records").All("sru:record")
	require.Len(t, records, 1)
	assert.True(t, records[0].Repeatable())
	assert.Equal(t, "1", records[0].Child("sru:recordPosition").Text)

	echo := root.Child("sru:echo")
	assert.Equal(t, "Wet & Besluit <b>x</b>", echo.Text)
	assert.Equal(t, "nl", echo.Attr("lang"))
}

func TestNode_NilSafeLookups(t *testing.T) {
	t.Parallel()

	var n *xmltree.Node
	assert.Nil(t, n.Child("a"))
	assert.Nil(t, n.Path("a", "b"))
	assert.Empty(t, n.All("a"))
	assert.Empty(t, n.Attr("a"))
	assert.False(t, n.Repeatable())

	root, err := newParser().Parse([]byte(`<a><b/></a>`))
	require.NoError(t, err)
	assert.Nil(t, root.Path("b", "c", "d"))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace", input: "  \n "},
		{name: "mismatched end", input: "<a><b></a></b>"},
		{name: "unclosed", input: "<a><b></b>"},
		{name: "two roots", input: "<a/><b/>"},
		{name: "text outside root", input: "<a/>junk"},
		{name: "undefined entity", input: "<a>&nbsp;</a>"},
		{name: "html", input: "<html><body><p>Service Unavailable</body></html>"},
		{name: "unknown charset", input: `<?xml version="1.0" encoding="x-no-such-charset"?><a/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := newParser().Parse([]byte(tt.input))
			assert.Nil(t, root)

			var parseErr *xmltree.ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParse_DecodesDeclaredCharset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "latin-1", input: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xe9</a>"},
		{name: "windows-1252", input: "<?xml version=\"1.0\" encoding=\"windows-1252\"?><a>caf\xe9</a>"},
		{name: "utf-8", input: "<?xml version=\"1.0\" encoding=\"utf-8\"?><a>caf\u00e9</a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := newParser().Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, "café", root.Text)
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	t.Parallel()

	p := newParser()
	p.MaxDepth = 2

	_, err := p.Parse([]byte("<a><b><c/></b></a>"))
	var parseErr *xmltree.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Positive(t, parseErr.Line)
}

func TestNode_MarshalJSON_RepeatableAlwaysArray(t *testing.T) {
	t.Parallel()

	root, err := newParser().Parse([]byte(sample))
	require.NoError(t, err)

	raw, err := json.Marshal(root)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2", decoded["sru:numberOfRecords"])

	records, ok := decoded["sru:records"].(map[string]any)
	require.True(t, ok)
	list, ok := records["sru:record"].([]any)
	require.True(t, ok, "a single repeatable element still renders as an array")
	assert.Len(t, list, 1)

	echo, ok := decoded["sru:echo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "nl", echo["@lang"])
	assert.Equal(t, "Wet & Besluit <b>x</b>", echo["#text"])
}

func TestNode_MarshalJSON_RepeatedNonRepeatable(t *testing.T) {
	t.Parallel()

	root, err := newParser().Parse([]byte(`<a><b>1</b><b>2</b><c>3</c></a>`))
	require.NoError(t, err)

	raw, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":["1","2"],"c":"3"}`, string(raw))
}
