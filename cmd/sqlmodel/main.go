// sqlmodel generates SQL model methods for annotated Go structs.
//
//	//go:generate go run github.com/syssam/sqlmodel/cmd/sqlmodel gen .
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sqlmodel:", err)
		stop()
		os.Exit(1)
	}
}
