package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/worker"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Serve JSON requests from stdin",
	Long: `Read one JSON request per line from stdin and write one JSON response per
line to stdout, in order.

A request names a function and its arguments:
  {"id": "1", "function": "给出部件分析", "args": ["天"]}

The response is either
  {"id": "1", "ok": true, "value": {...}}
or
  {"id": "1", "ok": false, "error": {"kind": "...", "char": "...", "message": "..."}}

Functions: 给出部件分析, encode, readings, filter`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}

	w := e.Serve()
	defer w.Close()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req worker.Request
		var resp worker.Response
		if err := json.Unmarshal(line, &req); err != nil {
			resp.Result = chai.Fail[any](fmt.Errorf("decoding request: %w", err))
		} else if resp, err = w.Call(ctx, req); err != nil {
			return err
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	return scanner.Err()
}
