package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errNotPublishable makes the process exit with status 1 without an extra error line.
var errNotPublishable = errors.New("recipe is not publishable")

type rootOptions struct {
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "recipectl",
		Short: "Offline recipe quality checks",
		Long: `recipectl evaluates recipe files with the same rules as the admin backend.

Examples:
  recipectl check tatin.yaml
  recipectl prepublish tatin.yaml --ingredients 4 --steps 5 --concepts 1
  recipectl template intermediate`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")

	root.AddCommand(
		newCheckCmd(opts),
		newPrePublishCmd(opts),
		newTemplateCmd(opts),
	)
	return root
}

// loadFile decodes a .json file with encoding/json and anything else as YAML.
func loadFile(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, dest)
	default:
		err = yaml.Unmarshal(data, dest)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
