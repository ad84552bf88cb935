// Package appshell wires a command's Run function to the process: signals,
// standard streams and the exit code.
package appshell

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"seqmatch/internal/writers"
)

// RunFunc is the signature shared by the command entry points.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with os.Args and exits with its code. SIGINT and SIGTERM
// cancel the context; a canceled run that reported success exits 130.
func Main(run RunFunc) {
	os.Exit(Exec(run, os.Args[1:], os.Stdout, os.Stderr))
}

// Exec is Main without the process exit.
func Exec(run RunFunc, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outw := bufio.NewWriterSize(stdout, 64<<10)
	code := run(ctx, argv, outw, stderr)
	if err := outw.Flush(); err != nil && code == 0 && !writers.IsBrokenPipe(err) {
		code = 3
	}
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
