package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pario-ai/ragchat/pkg/chat"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			if interactive {
				fmt.Println("ragchat — ketik pertanyaan Anda, `/help` untuk bantuan, `exit` untuk keluar.")
				fmt.Println()
				fmt.Println("Contoh pertanyaan:")
				for _, s := range chat.PickStarters(nil) {
					fmt.Printf("  - %s\n", s.Message)
				}
				fmt.Println()
			}

			return runREPL(ctx, a.chat, os.Stdin, os.Stdout, replOptions{chat: chat.Options{DetailedResponse: detailed}, prompt: interactive})
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "append debug information to every answer")
	return cmd
}

// messageProcessor is the part of the orchestrator the REPL needs.
type messageProcessor interface {
	ProcessMessage(ctx context.Context, text string, opts chat.Options) string
}

type replOptions struct {
	chat chat.Options
	// prompt prints "> " before each read. Off when stdin is piped.
	prompt bool
}

// runREPL reads one message per line until EOF, "exit" or ctx is done.
func runREPL(ctx context.Context, p messageProcessor, in io.Reader, out io.Writer, opts replOptions) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if opts.prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			if opts.prompt {
				fmt.Fprintln(out)
			}
			return scanner.Err()
		}
		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit", "quit":
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprintln(out, p.ProcessMessage(ctx, line, opts.chat))
		fmt.Fprintln(out)
	}
}
