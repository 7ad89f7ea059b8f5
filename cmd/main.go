package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterh/liner"
	"go.rox.dev/pkg"
	"go.uber.org/zap"
)

// sysexits codes
const (
	exUsage    = 64
	exDataErr  = 65
	exSoftware = 70
)

var (
	emitLLVM = flag.Bool("emit-llvm", false, "print the LLVM IR module instead of evaluating")
	showAST  = flag.Bool("ast", false, "print the parenthesized syntax tree before the value")
)

func main() {
	loadEnv()

	defaultLevel := zap.InfoLevel
	if s := os.Getenv("ROX_LOG_LEVEL"); s != "" {
		if err := defaultLevel.UnmarshalText([]byte(s)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid ROX_LOG_LEVEL %q: %s\n", s, err)
			os.Exit(exUsage)
		}
	}

	level := zap.LevelFlag("log-level", defaultLevel, "set log level")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: rox [flags] [script]")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(*level)
	dev, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(dev)
	defer zap.S().Sync()

	switch flag.NArg() {
	case 0:
		runPrompt()
	case 1:
		code := runFile(flag.Arg(0))
		_ = zap.S().Sync()
		os.Exit(code)
	default:
		flag.Usage()
		os.Exit(exUsage)
	}
}

// loadEnv reads the optional .env file named by ROX_ENV_PATH.
func loadEnv() {
	path := os.Getenv("ROX_ENV_PATH")
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load %s: %s\n", path, err)
	}
}

func runFile(filename string) int {
	in := rox.NewInterpreter()

	f, err := os.Open(filename)
	if err != nil {
		zap.S().Errorf("open script: %s", err)
		return exUsage
	}
	defer f.Close()

	return run(in, f, os.Stdout)
}

func runPrompt() {
	prompt := os.Getenv("ROX_PROMPT")
	if prompt == "" {
		prompt = "> "
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	in := rox.NewInterpreter()
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if err != nil {
			zap.S().Errorf("read prompt: %s", err)
			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		ln.AppendHistory(line)
		run(in, strings.NewReader(line), os.Stdout)
	}
}

// run executes one source and reports its outcome as a sysexits code.
func run(in *rox.Interpreter, source io.Reader, out io.Writer) int {
	expr, err := in.Parse(source)
	if err != nil {
		return report(err)
	}

	if *showAST {
		fmt.Fprintln(out, expr)
	}

	if *emitLLVM {
		mod, err := rox.Lower(expr)
		if err != nil {
			return report(err)
		}

		fmt.Fprint(out, mod)
		return 0
	}

	value, err := rox.EvaluateLiteral(expr)
	if err != nil {
		return report(err)
	}

	fmt.Fprintln(out, value)
	return 0
}

func report(err error) int {
	fmt.Fprintln(os.Stderr, "error:", err)

	var syntaxErr *rox.SyntaxError
	if errors.As(err, &syntaxErr) {
		return exDataErr
	}

	return exSoftware
}
