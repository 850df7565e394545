package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return withCode(exitDB, fmt.Errorf("json encode: %w", err))
	}
	return nil
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", withCode(exitUsage, fmt.Errorf("--input is required"))
	}
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", withCode(exitUsage, fmt.Errorf("read stdin: %w", err))
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", withCode(exitUsage, fmt.Errorf("read %s: %w", path, err))
	}
	return string(b), nil
}
