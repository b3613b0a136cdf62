// Command taskexport loads the task records, filters one view and writes its
// CSV export. The import subcommand copies a JSON export into the SQLite
// source table.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := exportCmd()
	if len(args) > 0 && args[0] == "import" {
		cmd = importCmd()
		args = args[1:]
	}
	return cmd.Run(ctx, &IO{out: stdout, err: stderr}, args)
}

// IO carries the command output streams.
type IO struct {
	out io.Writer
	err io.Writer
}

func (o *IO) Println(a ...any) {
	fmt.Fprintln(o.out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	fmt.Fprintf(o.out, format, a...)
}

func (o *IO) ErrPrintln(a ...any) {
	fmt.Fprintln(o.err, a...)
}
