package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nguyentantai21042004/genai-workshop/internal/apperr"
)

const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	return exitCode(ctx, err, a.verbose, stderr)
}

func exitCode(ctx context.Context, err error, verbose bool, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "Interrupted by user")
		return exitInterrupted
	}
	printError(stderr, err, verbose)
	return exitError
}

// printError writes one line for err. In verbose mode the category and every
// cause follow on their own lines.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintf(w, "Error: %s\n", strings.ReplaceAll(err.Error(), "\n", " "))
	if !verbose {
		return
	}
	if c := apperr.Category(err); c != nil {
		fmt.Fprintf(w, "  category: %v\n", c)
	}
	for cause := unwrapCause(err); cause != nil; cause = unwrapCause(cause) {
		fmt.Fprintf(w, "  caused by: %v\n", cause)
	}
}

// unwrapCause follows the underlying error, skipping apperr kinds.
func unwrapCause(err error) error {
	if e, ok := err.(*apperr.Error); ok {
		return e.Err
	}
	return errors.Unwrap(err)
}
