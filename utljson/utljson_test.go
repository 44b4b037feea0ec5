package utljson_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
	"github.com/DmitriBogdanov/prototyping-utils/jsonparse"
	"github.com/DmitriBogdanov/prototyping-utils/jsonval"
	"github.com/DmitriBogdanov/prototyping-utils/utljson"
)

func useMemFS(t *testing.T) afero.Fs {
	t.Helper()
	orig := utljson.FS
	utljson.FS = afero.NewMemMapFs()
	t.Cleanup(func() { utljson.FS = orig })
	return utljson.FS
}

func TestParseAndSerialize(t *testing.T) {
	root, err := utljson.Parse([]byte(`{"a":1,"b":[true,null]}`))
	require.NoError(t, err)
	require.True(t, root.IsObject())
	require.Equal(t, `{"a":1,"b":[true,null]}`,
		string(utljson.Serialize(&root, jsonval.Minimized)))
}

func TestParseString(t *testing.T) {
	root, err := utljson.ParseString(`[1,2]`)
	require.NoError(t, err)
	require.True(t, root.IsArray())
}

func TestParseReader(t *testing.T) {
	root, err := utljson.ParseReader(strings.NewReader(`{"x":"y"}`))
	require.NoError(t, err)
	x, err := root.At("x")
	require.NoError(t, err)
	require.Equal(t, "y", *x.AsString())
}

func TestFileRoundTrip(t *testing.T) {
	useMemFS(t)

	root := jsonval.MustFrom(map[string]any{"k": []any{1, false, nil}})
	require.NoError(t, utljson.WriteFile(&root, "/data/out.json", jsonval.Pretty))

	back, err := utljson.ParseFile("/data/out.json")
	require.NoError(t, err)
	require.True(t, jsonval.Equal(&root, &back))
}

func TestWriteFileAtomic(t *testing.T) {
	fs := useMemFS(t)
	require.NoError(t, fs.MkdirAll("/data", 0o755))

	root := jsonval.MustFrom([]int{1, 2, 3})
	require.NoError(t, utljson.WriteFileAtomic(&root, "/data/out.json", jsonval.Minimized))

	data, err := afero.ReadFile(fs, "/data/out.json")
	require.NoError(t, err)
	require.Equal(t, `[1,2,3]`, string(data))

	// No temp files left behind.
	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestParseFileMissing(t *testing.T) {
	useMemFS(t)

	_, err := utljson.ParseFile("/nope.json")
	require.True(t, jsonerr.IsKind(err, jsonerr.FileAccess), "got %v", err)
}

func TestParseFileBadContent(t *testing.T) {
	fs := useMemFS(t)
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`{"a":`), 0o644))

	_, err := utljson.ParseFile("/bad.json")
	require.True(t, jsonerr.IsKind(err, jsonerr.UnexpectedEnd), "got %v", err)
}

func TestSetRecursionLimit(t *testing.T) {
	defer utljson.SetRecursionLimit(jsonparse.DefaultRecursionLimit)

	utljson.SetRecursionLimit(2)
	_, err := utljson.Parse([]byte(`[1]`))
	require.NoError(t, err)
	_, err = utljson.Parse([]byte(`[[1]]`))
	require.True(t, jsonerr.IsKind(err, jsonerr.DepthExceeded), "got %v", err)
}
