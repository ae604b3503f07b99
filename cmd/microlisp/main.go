package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/peterh/liner"

	"ashn.dev/microlisp"
)

const (
	historyFile = ".microlisp_history"
	promptMain  = "=> "
	promptCont  = ".. "
)

func dumpTokensSource(ctx *microlisp.Context, source string, location *microlisp.SourceLocation) error {
	tokens := make([]microlisp.Value, 0)
	for _, token := range microlisp.Lex(source, location) {
		tokens = append(tokens, token.IntoValue(ctx))
	}
	return dump(ctx.NewList(tokens))
}

func dumpFormsSource(ctx *microlisp.Context, source string, location *microlisp.SourceLocation) error {
	forms, err := microlisp.ReadAll(ctx, source, location)
	if err != nil {
		return err
	}
	return dump(ctx.NewList(forms))
}

func dump(value microlisp.Value) error {
	var sb strings.Builder
	encoder := microlisp.NewCombEncoder(&sb, microlisp.Ptr("    "))
	err := value.CombEncode(encoder)
	if err != nil {
		return err
	}
	fmt.Println(sb.String())
	return nil
}

func evalSource(ctx *microlisp.Context, source string, location *microlisp.SourceLocation) error {
	result, err := microlisp.EvalSource(ctx, source, location)
	if err != nil {
		return err
	}
	fmt.Println(result.String())
	return nil
}

func execSource(ctx *microlisp.Context, source string, location *microlisp.SourceLocation) error {
	_, err := microlisp.EvalSource(ctx, source, location)
	return err
}

type sourceFunc func(*microlisp.Context, string, *microlisp.SourceLocation) error

func runFile(ctx *microlisp.Context, path string, run sourceFunc) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return run(ctx, string(bytes), &microlisp.SourceLocation{File: path, Line: 1})
}

func report(err error) {
	var parseError microlisp.ParseError
	if errors.As(err, &parseError) && parseError.Location != nil {
		fmt.Fprintf(os.Stderr, "[%v:%v] error: %v\n", parseError.Location.File, parseError.Location.Line, err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

// Reads lines until they hold a complete form or an unrecoverable parse
// error. The second result is false once input is exhausted.
func readSource(ctx *microlisp.Context, ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		source := b.String()
		if _, err := microlisp.ReadAll(ctx, source, nil); microlisp.IsIncomplete(err) {
			continue
		}
		return source, true
	}
}

// Reports whether source holds no forms, only whitespace and comments.
func isBlank(ctx *microlisp.Context, source string) bool {
	forms, err := microlisp.ReadAll(ctx, source, nil)
	return err == nil && len(forms) == 0
}

func repl(ctx *microlisp.Context) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		source, ok := readSource(ctx, ln)
		if !ok {
			fmt.Println()
			return
		}
		if isBlank(ctx, source) {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))

		result, err := microlisp.EvalSource(ctx, source, &microlisp.SourceLocation{File: "<repl>", Line: 1})
		if err != nil {
			report(err)
			continue
		}
		fmt.Println(result.String())
	}
}

func usage(w io.Writer) {
	program := os.Args[0]
	fmt.Fprintf(w, `usage:
  %s [FILE]
  %s [-c|--command] COMMAND

options:
  -c, --command     Evaluate the provided command and print the result.
  --dump-tokens     Dump a comb-encoded list of lexed tokens to stdout.
  --dump-ast        Dump a comb-encoded list of read forms to stdout.
  -h, --help        Display this help text and exit.

At most one FILE is accepted; use -- before a FILE that starts with a dash.
Without a command or file an interactive session is started.
`, program, program)
}

var (
	reCommand    = regexp.MustCompile(`^-+c(?:ommand)?(?:=(.*))?$`)
	reDumpTokens = regexp.MustCompile(`^-+dump-tokens$`)
	reDumpAst    = regexp.MustCompile(`^-+dump-ast$`)
	reHelp       = regexp.MustCompile(`^-+h(?:elp)?$`)
)

type options struct {
	cmds       *string
	file       *string
	dumpTokens bool
	dumpAst    bool
	help       bool
}

// Parses the arguments following the program name.
func parseArgs(args []string) (options, error) {
	var opts options
	for argi := 0; argi < len(args); argi += 1 {
		arg := args[argi]

		// Remaining arg is the file, processed verbatim.
		if arg == "--" {
			rest := args[argi+1:]
			if len(rest) == 0 {
				break
			}
			if opts.file != nil || len(rest) > 1 {
				return options{}, fmt.Errorf("unexpected argument %s", rest[len(rest)-1])
			}
			opts.file = &rest[0]
			break
		}

		// -c, -command
		if m := reCommand.FindStringSubmatch(arg); m != nil {
			// -c='(+ 1 2)'
			if m[1] != "" {
				opts.cmds = &m[1]
				continue
			}

			// -c '(+ 1 2)'
			if argi+1 < len(args) {
				opts.cmds = &args[argi+1]
				argi += 1
				continue
			}

			return options{}, errors.New("expected command argument")
		}

		// -dump-tokens
		if reDumpTokens.MatchString(arg) {
			opts.dumpTokens = true
			continue
		}

		// -dump-ast
		if reDumpAst.MatchString(arg) {
			opts.dumpAst = true
			continue
		}

		// -h, -help
		if reHelp.MatchString(arg) {
			opts.help = true
			continue
		}

		if strings.HasPrefix(arg, "-") {
			return options{}, fmt.Errorf("unknown flag %s", arg)
		}

		if opts.file != nil {
			return options{}, fmt.Errorf("unexpected argument %s", arg)
		}
		opts.file = &args[argi]
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		usage(os.Stderr)
		os.Exit(1)
	}
	if opts.help {
		usage(os.Stdout)
		os.Exit(0)
	}

	run := sourceFunc(evalSource)
	if opts.file != nil && opts.cmds == nil {
		run = execSource
	}
	if opts.dumpTokens {
		run = dumpTokensSource
	} else if opts.dumpAst {
		run = dumpFormsSource
	}

	ctx := microlisp.NewContext()
	if opts.cmds != nil {
		err = run(&ctx, *opts.cmds, &microlisp.SourceLocation{File: "<command>", Line: 1})
	} else if opts.file != nil {
		err = runFile(&ctx, *opts.file, run)
	} else if opts.dumpTokens || opts.dumpAst {
		fmt.Fprintf(os.Stderr, "error: requested dump without a command or file path\n")
		os.Exit(1)
	} else {
		repl(&ctx)
	}

	if err != nil {
		report(err)
		os.Exit(1)
	}
}
