// Package utljson is the public entry point of the JSON codec: parse
// a buffer or file into a jsonval.Value, serialize a value back to
// bytes, write it to a file.
//
// File access goes through the package-level FS (an afero.Fs), so
// tests and embedders can swap the filesystem without touching the
// codec. The core itself never touches the filesystem.
package utljson

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/DmitriBogdanov/prototyping-utils/jsonerr"
	"github.com/DmitriBogdanov/prototyping-utils/jsonparse"
	"github.com/DmitriBogdanov/prototyping-utils/jsonval"
)

// FS is the filesystem used by ParseFile, WriteFile, and
// WriteFileAtomic. Defaults to the OS filesystem.
var FS afero.Fs = afero.NewOsFs()

// Parse parses a complete JSON document from data. Trailing
// non-whitespace bytes fail with TrailingData.
func Parse(data []byte) (jsonval.Value, error) {
	return jsonparse.Parse(data)
}

// ParseString parses a complete JSON document from a string.
func ParseString(text string) (jsonval.Value, error) {
	return jsonparse.Parse([]byte(text))
}

// ParseFile reads the whole file at path and parses it. Open and read
// failures surface as FileAccess.
func ParseFile(path string) (jsonval.Value, error) {
	data, err := readFile(path)
	if err != nil {
		return jsonval.Value{}, err
	}
	return jsonparse.Parse(data)
}

// ParseReader reads all bytes from r and parses them.
func ParseReader(r io.Reader) (jsonval.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return jsonval.Value{}, jsonerr.Wrap(jsonerr.FileAccess, "read input", err)
	}
	return jsonparse.Parse(data)
}

// Serialize encodes the value in the given format.
func Serialize(v *jsonval.Value, format jsonval.Format) []byte {
	return jsonval.Serialize(nil, v, format)
}

// WriteFile serializes the value and writes it to path, overwriting
// any existing file.
func WriteFile(v *jsonval.Value, path string, format jsonval.Format) error {
	data := Serialize(v, format)
	if err := afero.WriteFile(FS, path, data, 0o644); err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess,
			fmt.Sprintf("write file %q", path), err)
	}
	return nil
}

// WriteFileAtomic serializes the value and writes it to path through
// a temp file and rename, so a crash mid-write never leaves a
// truncated file at the target. Atomic on local filesystems when the
// temp file and target share a mount. After the rename the directory
// is synced on a best-effort basis; a failed directory sync is ignored.
func WriteFileAtomic(v *jsonval.Value, path string, format jsonval.Format) error {
	data := Serialize(v, format)
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(FS, dir, ".utljson-*.tmp")
	if err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess, "create temp file", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = FS.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess, "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess, "sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess, "close temp file", err)
	}
	if err := FS.Rename(tmpPath, path); err != nil {
		return jsonerr.Wrap(jsonerr.FileAccess, "rename temp to final", err)
	}
	success = true
	if d, err := FS.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// SetRecursionLimit sets the parser's depth cap (default 1000).
func SetRecursionLimit(n int) { jsonparse.SetRecursionLimit(n) }

// readFile opens path and reads it whole: the parser core consumes a
// byte buffer, never a file handle.
func readFile(path string) ([]byte, error) {
	f, err := FS.Open(path)
	if err != nil {
		return nil, jsonerr.Wrap(jsonerr.FileAccess,
			fmt.Sprintf("open file %q", path), err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, jsonerr.Wrap(jsonerr.FileAccess,
			fmt.Sprintf("read file %q", path), err)
	}
	return data, nil
}
