// Command utljson formats, verifies, and inspects JSON documents
// using the repository's JSON codec.
//
//	utljson format [--minimize] [file|-]
//	utljson verify [--quiet] [file|-]
//	utljson stats [file|-]
//
// Exit codes: 0 on success, 2 on invalid input or usage, 10 on
// internal I/O failure.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/DmitriBogdanov/prototyping-utils/jsonparse"
	"github.com/DmitriBogdanov/prototyping-utils/jsonval"
)

const (
	exitSuccess  = 0
	exitInvalid  = 2
	exitInternal = 10
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := kingpin.New("utljson", "JSON formatting and inspection tool.")
	app.Terminate(nil)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	verbose := app.Flag("verbose", "Log timing and sizes to stderr.").Short('v').Bool()
	limit := app.Flag("recursion-limit", "Maximum parser nesting depth.").
		Default("1000").Int()

	formatCmd := app.Command("format", "Parse a document and re-emit it formatted.")
	formatMinimize := formatCmd.Flag("minimize", "Emit minimized output instead of pretty.").Bool()
	formatFile := formatCmd.Arg("file", "Input file, or '-' for stdin.").Default("-").String()

	verifyCmd := app.Command("verify", "Parse a document and report diagnostics.")
	verifyQuiet := verifyCmd.Flag("quiet", "Suppress the success message.").Short('q').Bool()
	verifyFile := verifyCmd.Arg("file", "Input file, or '-' for stdin.").Default("-").String()

	statsCmd := app.Command("stats", "Print structural statistics for a document.")
	statsFile := statsCmd.Arg("file", "Input file, or '-' for stdin.").Default("-").String()

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitInvalid
	}

	logger := log.Logger(log.NewNopLogger())
	if *verbose {
		logger = level.NewFilter(log.NewLogfmtLogger(stderr), level.AllowDebug())
	}
	jsonparse.SetRecursionLimit(*limit)

	switch cmd {
	case formatCmd.FullCommand():
		return cmdFormat(*formatFile, *formatMinimize, stdin, stdout, stderr, logger)
	case verifyCmd.FullCommand():
		return cmdVerify(*verifyFile, *verifyQuiet, stdin, stderr, logger)
	case statsCmd.FullCommand():
		return cmdStats(*statsFile, stdin, stdout, stderr, logger)
	default:
		return exitSuccess
	}
}

func cmdFormat(file string, minimize bool, stdin io.Reader, stdout, stderr io.Writer, logger log.Logger) int {
	data, code := readInput(file, stdin, stderr)
	if code != exitSuccess {
		return code
	}

	root, ok := parseInput(data, stderr, logger)
	if !ok {
		return exitInvalid
	}

	format := jsonval.Pretty
	if minimize {
		format = jsonval.Minimized
	}
	out := jsonval.Serialize(nil, &root, format)
	out = append(out, '\n')

	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintf(stderr, "error: writing output: %v\n", err)
		return exitInternal
	}
	return exitSuccess
}

func cmdVerify(file string, quiet bool, stdin io.Reader, stderr io.Writer, logger log.Logger) int {
	data, code := readInput(file, stdin, stderr)
	if code != exitSuccess {
		return code
	}

	if _, ok := parseInput(data, stderr, logger); !ok {
		return exitInvalid
	}
	if !quiet {
		fmt.Fprintln(stderr, "ok")
	}
	return exitSuccess
}

func cmdStats(file string, stdin io.Reader, stdout, stderr io.Writer, logger log.Logger) int {
	data, code := readInput(file, stdin, stderr)
	if code != exitSuccess {
		return code
	}

	root, ok := parseInput(data, stderr, logger)
	if !ok {
		return exitInvalid
	}

	var st stats
	st.walk(&root, 1)

	bold := color.New(color.Bold)
	bold.Fprintln(stdout, "Document:")
	fmt.Fprintf(stdout, "\tinput size: %s, max depth: %d\n",
		humanize.Bytes(uint64(len(data))), st.maxDepth)
	fmt.Fprintf(stdout, "\tobjects: %d, arrays: %d, strings: %d, numbers: %d, bools: %d, nulls: %d\n",
		st.objects, st.arrays, st.strings, st.numbers, st.bools, st.nulls)
	fmt.Fprintf(stdout, "\tminimized size: %s, pretty size: %s\n",
		humanize.Bytes(uint64(len(jsonval.Serialize(nil, &root, jsonval.Minimized)))),
		humanize.Bytes(uint64(len(jsonval.Serialize(nil, &root, jsonval.Pretty)))))
	return exitSuccess
}

type stats struct {
	objects, arrays, strings, numbers, bools, nulls int
	maxDepth                                        int
}

func (s *stats) walk(v *jsonval.Value, depth int) {
	if depth > s.maxDepth {
		s.maxDepth = depth
	}
	switch v.Kind() {
	case jsonval.KindObject:
		s.objects++
		obj := v.AsObject()
		for i := 0; i < obj.Len(); i++ {
			s.walk(&obj.MemberAt(i).Value, depth+1)
		}
	case jsonval.KindArray:
		s.arrays++
		arr := v.AsArray()
		for i := range *arr {
			s.walk(&(*arr)[i], depth+1)
		}
	case jsonval.KindString:
		s.strings++
	case jsonval.KindNumber:
		s.numbers++
	case jsonval.KindBool:
		s.bools++
	default:
		s.nulls++
	}
}

func readInput(file string, stdin io.Reader, stderr io.Writer) ([]byte, int) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "error: reading stdin: %v\n", err)
			return nil, exitInternal
		}
		return data, exitSuccess
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return nil, exitInvalid
	}
	return data, exitSuccess
}

func parseInput(data []byte, stderr io.Writer, logger log.Logger) (jsonval.Value, bool) {
	start := time.Now()
	root, err := jsonparse.Parse(data)
	if err != nil {
		red := color.New(color.FgRed)
		red.Fprint(stderr, "parse failed: ")
		fmt.Fprintf(stderr, "%v\n", err)
		return jsonval.Value{}, false
	}
	level.Debug(logger).Log(
		"msg", "parsed document",
		"bytes", len(data),
		"duration", time.Since(start),
	)
	return root, true
}
