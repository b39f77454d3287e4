package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrReadMarkdown       = errors.New("failed to read markdown")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrAmbiguousID        = errors.New("ambiguous ID prefix")
)

// command runs one subcommand with the arguments that follow its name.
type command func(ctx context.Context, args []string, env *Environment) error

// commands maps subcommand names to their entry points.
var commands = map[string]command{
	"render":   runRender,
	"article":  runArticle,
	"category": runCategory,
	"draft":    runDraft,
	"stats":    runStats,
	"export":   runExport,
	"themes":   runThemes,
}

// run dispatches args to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	err := dispatch(ctx, args, env)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error:", formatError(err))
	return exitCodeFor(err)
}

func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	name, rest := args[0], args[1:]
	switch name {
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "blogmd %s\n", Version)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd(ctx, rest, env)
}

// runSubcommand dispatches a command group such as "article list".
func runSubcommand(ctx context.Context, group string, subs map[string]command, args []string, env *Environment, usage func(io.Writer)) error {
	if len(args) == 0 {
		usage(env.Stderr)
		return fmt.Errorf("%w: %s needs a subcommand", ErrUsage, group)
	}
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(env.Stdout)
		return nil
	}
	sub, ok := subs[args[0]]
	if !ok {
		usage(env.Stderr)
		return fmt.Errorf("%w: %s %q", ErrUnknownCommand, group, args[0])
	}
	return sub(ctx, args[1:], env)
}

// logf prints progress to stderr unless quiet.
func logf(env *Environment, f commonFlags, format string, args ...any) {
	if f.quiet {
		return
	}
	fmt.Fprintf(env.Stderr, format+"\n", args...)
}

// verbosef prints detail to stderr when verbose.
func verbosef(env *Environment, f commonFlags, format string, args ...any) {
	if !f.verbose || f.quiet {
		return
	}
	fmt.Fprintf(env.Stderr, format+"\n", args...)
}

// wantArgs checks the positional argument count.
func wantArgs(args []string, n int, what string) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %s", ErrUsage, what)
	}
	return nil
}
