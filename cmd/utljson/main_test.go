package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestFormatMinimize(t *testing.T) {
	code, out, _ := runCLI(t,
		[]string{"format", "--minimize"},
		` { "b" : 1, "a" : [ 1, 2 ] } `)
	require.Equal(t, exitSuccess, code)
	require.Equal(t, `{"a":[1,2],"b":1}`+"\n", out)
}

func TestFormatPretty(t *testing.T) {
	code, out, _ := runCLI(t, []string{"format"}, `{"a":1}`)
	require.Equal(t, exitSuccess, code)
	require.Equal(t, "{\n    \"a\": 1\n}\n", out)
}

func TestFormatInvalidInput(t *testing.T) {
	code, _, errOut := runCLI(t, []string{"format"}, `{"a":flase}`)
	require.Equal(t, exitInvalid, code)
	require.Contains(t, errOut, "parse failed")
	require.Contains(t, errOut, "^")
}

func TestVerify(t *testing.T) {
	code, _, errOut := runCLI(t, []string{"verify"}, `[1,2,3]`)
	require.Equal(t, exitSuccess, code)
	require.Contains(t, errOut, "ok")

	code, _, errOut = runCLI(t, []string{"verify", "--quiet"}, `[1,2,3]`)
	require.Equal(t, exitSuccess, code)
	require.NotContains(t, errOut, "ok")

	code, _, _ = runCLI(t, []string{"verify"}, `[1,2,`)
	require.Equal(t, exitInvalid, code)
}

func TestVerifyRecursionLimitFlag(t *testing.T) {
	code, _, _ := runCLI(t, []string{"--recursion-limit", "2", "verify"}, `[[1]]`)
	require.Equal(t, exitInvalid, code)

	code, _, _ = runCLI(t, []string{"verify"}, `[[1]]`)
	require.Equal(t, exitSuccess, code)
}

func TestStats(t *testing.T) {
	code, out, _ := runCLI(t, []string{"stats"}, `{"a":[1,"x",true,null]}`)
	require.Equal(t, exitSuccess, code)
	require.Contains(t, out, "objects: 1")
	require.Contains(t, out, "arrays: 1")
	require.Contains(t, out, "numbers: 1")
	require.Contains(t, out, "max depth: 3")
}

func TestVerboseLogging(t *testing.T) {
	code, _, errOut := runCLI(t, []string{"--verbose", "verify", "--quiet"}, `{}`)
	require.Equal(t, exitSuccess, code)
	require.Contains(t, errOut, "parsed document")
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, []string{"bogus"}, ``)
	require.Equal(t, exitInvalid, code)
	require.Contains(t, errOut, "error:")
}
