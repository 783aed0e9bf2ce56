package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pario-ai/ragchat/pkg/models"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		file     string
		noCache  bool
		noHybrid bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "batch [question...]",
		Short: "Ask several questions in one backend call",
		Long:  "Ask several questions in one backend call. Questions come from the arguments or, with --file, one per line (use - for stdin).",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions := args
			if file != "" {
				var err error
				questions, err = readQuestions(file)
				if err != nil {
					return err
				}
			}

			req, err := models.NewBatchRequest(questions,
				models.WithBatchCache(!noCache),
				models.WithBatchHybrid(!noHybrid),
			)
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			resp := a.client.BatchSearch(ctx, req)

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			return printBatch(os.Stdout, req.Questions, resp)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read questions from a file, one per line")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "ask the backend to skip its cache")
	cmd.Flags().BoolVar(&noHybrid, "no-hybrid", false, "disable hybrid search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw response as JSON")
	return cmd
}

// readQuestions reads non-blank lines from path, or stdin when path is "-".
func readQuestions(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open questions: %w", err)
		}
		defer f.Close()
		r = f
	}

	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return out, nil
}

func printBatch(out io.Writer, questions []string, resp models.BatchResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tQUESTION\tSTATUS\tSOURCES\tANSWER")
	for i, r := range resp.Results {
		answer := r.Answer
		if r.IsError() {
			answer = r.ErrorMessage
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			i+1, truncate(questions[i], 40), r.Status, r.SourceCount, truncate(oneLine(answer), 80))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d questions in %.2fs\n", resp.TotalQuestions, resp.ProcessingTime)
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
