package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func mustParse(t *testing.T, doc string) *Workflow {
	t.Helper()
	wf, err := Parse([]byte(doc))
	require.NoError(t, err)
	return wf
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{ invalid json }"))
	require.Error(t, err)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("not found", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": `), 0644))

		_, err := Load(path)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, path, perr.Path)
	})

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"wf_ok","nodes":[],"connections":{}}`), 0644))

		wf, err := Load(path)
		require.NoError(t, err)
		name, ok := wf.Name()
		assert.True(t, ok)
		assert.Equal(t, "wf_ok", name)
	})
}

func TestNodesAndConnectionsKeepDocumentOrder(t *testing.T) {
	wf := mustParse(t, `{
		"nodes": [{"name": "Zeta"}, {"name": "Alpha"}, {"name": "Mid"}],
		"connections": {"Zeta": {}, "Alpha": {}, "Mid": {}}
	}`)

	var names []string
	for _, n := range wf.Nodes() {
		names = append(names, n.Label())
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)

	var sources []string
	wf.Connections(func(source string, _ gjson.Result) {
		sources = append(sources, source)
	})
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, sources)
}

func TestField_LiteralKeys(t *testing.T) {
	wf := mustParse(t, `{"connections": {"Get *.csv": {"main": []}}}`)

	var sources []string
	wf.Connections(func(source string, outputs gjson.Result) {
		sources = append(sources, source)
		assert.True(t, outputs.IsObject())
	})
	assert.Equal(t, []string{"Get *.csv"}, sources)
}

func TestNodes_NotAnArray(t *testing.T) {
	wf := mustParse(t, `{"nodes": {"name": "A"}}`)
	assert.Empty(t, wf.Nodes())
}

func TestPresent(t *testing.T) {
	doc := gjson.Parse(`{"s":"x","empty":"","zero":0,"one":1,"f":false,"t":true,"n":null,"a":[],"o":{}}`)

	tests := []struct {
		key  string
		want bool
	}{
		{"s", true},
		{"empty", false},
		{"zero", false},
		{"one", true},
		{"f", false},
		{"t", true},
		{"n", false},
		{"a", true},
		{"o", true},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Present(doc.Get(tt.key)))
		})
	}
}

func TestStrictEqual(t *testing.T) {
	doc := gjson.Parse(`{"a":"x","b":"x","c":"y","one":1,"uno":1.0,"str1":"1","o1":{},"o2":{},"n1":null,"n2":null}`)
	get := doc.Get

	assert.True(t, StrictEqual(get("a"), get("b")))
	assert.False(t, StrictEqual(get("a"), get("c")))
	assert.True(t, StrictEqual(get("one"), get("uno")))
	assert.False(t, StrictEqual(get("one"), get("str1")))
	assert.False(t, StrictEqual(get("o1"), get("o2")), "objects compare by identity")
	assert.True(t, StrictEqual(get("n1"), get("n2")))
	assert.True(t, StrictEqual(get("missing"), get("alsoMissing")))
	assert.False(t, StrictEqual(get("missing"), get("n1")))
}

func TestKeyCount(t *testing.T) {
	doc := gjson.Parse(`{"o":{"a":1,"b":2},"e":{},"arr":[1],"s":"abc","num":5}`)

	assert.Equal(t, 2, KeyCount(doc.Get("o")))
	assert.Equal(t, 0, KeyCount(doc.Get("e")))
	assert.Equal(t, 1, KeyCount(doc.Get("arr")))
	assert.Equal(t, 3, KeyCount(doc.Get("s")))
	assert.Equal(t, 0, KeyCount(doc.Get("num")))
	assert.Equal(t, 0, KeyCount(doc.Get("missing")))
}

func TestCompact(t *testing.T) {
	v := gjson.Parse("{\n  \"apiKey\" : \"abc\",\n  \"list\": [ 1, 2 ]\n}")
	assert.Equal(t, `{"apiKey":"abc","list":[1,2]}`, Compact(v))
	assert.Equal(t, "", Compact(gjson.Result{}))
}

func TestCompact_NormalizesEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped key", `{"api\u004bey": "x"}`, `{"apiKey":"x"}`},
		{"solidus", `"a\/b"`, `"a/b"`},
		{"surrogate pair", `"\ud83d\ude00"`, `"😀"`},
		{"lone surrogate", `"\ud800"`, `"\ud800"`},
		{"control characters", `"\u000a\u0001\u0009"`, `"\n\u0001\t"`},
		{"quote and backslash", `"\u0022\u005c"`, `"\"\\"`},
		{"escaped backslash before u", `"\\u0041"`, `"\\u0041"`},
		{"short escapes kept", `"\n\"\\"`, `"\n\"\\"`},
		{"non-ascii", `"caf\u00e9"`, `"café"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compact(gjson.Parse(tt.in)))
		})
	}
}
