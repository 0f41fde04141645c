// Command calc runs, formats and inspects calculator programs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"github.com/sanity-io/litter"

	calculator "github.com/nj-vs-vh/calculator"
)

const (
	appName     = "calc"
	historyFile = ".calc_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var (
	errColor = color.New(color.FgRed)
	outColor = color.New(color.FgCyan)
)

type runCmd struct {
	File string `arg:"" help:"Script to execute, or - for stdin."`
}

type fmtCmd struct {
	File   string `arg:"" type:"existingfile" help:"Script to format."`
	Minify bool   `help:"Emit a single line with all optional whitespace removed."`
	Write  bool   `short:"w" help:"Rewrite the file instead of printing to stdout."`
}

type tokensCmd struct {
	File string `arg:"" type:"existingfile" help:"Script to tokenize."`
}

type astCmd struct {
	File string `arg:"" type:"existingfile" help:"Script to parse."`
	Raw  bool   `help:"Dump the tree as Go literals instead of the box-drawing rendering."`
}

type replCmd struct{}

var cli struct {
	Run     runCmd           `cmd:"" help:"Run a script and print its final value."`
	Fmt     fmtCmd           `cmd:"" help:"Reformat a script."`
	Tokens  tokensCmd        `cmd:"" help:"Print the token sequence of a script."`
	Ast     astCmd           `cmd:"" help:"Print the parsed expression tree of a script."`
	Repl    replCmd          `cmd:"" default:"withargs" help:"Start an interactive session."`
	Version kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	ctx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description("A tiny calculator language: expressions, tuples, functions."),
		kong.Vars{"version": calculator.Version},
	)
	ctx.FatalIfErrorf(ctx.Run())
}

func (c *runCmd) Run() error {
	var src []byte
	var err error
	if c.File == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}
	in := calculator.NewInterp()
	v, rerr := in.RunSource(string(src))
	if rerr != nil {
		errColor.Fprintln(os.Stderr, rerr.Error())
		os.Exit(1)
	}
	fmt.Println(v.String())
	return nil
}

func (c *fmtCmd) Run() error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	tokens, terr := calculator.Tokenize(string(src))
	if terr != nil {
		errColor.Fprintln(os.Stderr, terr.Error())
		os.Exit(1)
	}
	out := calculator.Format(tokens, c.Minify)
	if c.Write {
		return os.WriteFile(c.File, []byte(out), 0o644)
	}
	fmt.Print(out)
	return nil
}

func (c *tokensCmd) Run() error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	tokens, terr := calculator.Tokenize(string(src))
	if terr != nil {
		errColor.Fprintln(os.Stderr, terr.Error())
		os.Exit(1)
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Type", "Lexeme", "Offset"})
	for i, t := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			t.Type.String(),
			strconv.Quote(t.Lexeme),
			strconv.Itoa(t.Start),
		})
	}
	table.Render()
	return nil
}

func (c *astCmd) Run() error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	tokens, terr := calculator.Tokenize(string(src))
	if terr != nil {
		errColor.Fprintln(os.Stderr, terr.Error())
		os.Exit(1)
	}
	program, perr := calculator.Parse(tokens)
	if perr != nil {
		errColor.Fprintln(os.Stderr, perr.Error())
		os.Exit(1)
	}
	if c.Raw {
		litter.Dump(program)
		return nil
	}
	fmt.Println(calculator.FormatTree(program))
	return nil
}

func (c *replCmd) Run() error {
	fmt.Printf("calc %s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", calculator.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	in := calculator.NewInterp()
	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return nil
			}
			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		v, err := in.RunSource(code)
		if err != nil {
			errColor.Fprintln(os.Stderr, err.Error())
			continue
		}
		outColor.Println(v.String())
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads lines until they parse as a complete program, showing
// the continuation prompt while an open bracket is pending.
func readStatement(ln *liner.State) (string, bool) {
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
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		tokens, terr := calculator.Tokenize(src)
		if terr != nil {
			return src, true
		}
		if _, perr := calculator.Parse(tokens); perr != nil && calculator.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
