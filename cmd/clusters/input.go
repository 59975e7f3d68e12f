package main

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func SetInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "-", "The graph `file` to read, {\"n\": 4, \"edges\": [[1, 2]]}; - reads stdin")
	_ = cmd.MarkFlagFilename("file", "json")
}

// readInput decodes the JSON graph description at path into dst.
func readInput(cmd *cobra.Command, fs afero.Fs, path string, dst any) error {
	var r io.Reader
	if path == "" || path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := fs.Open(path)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return errors.Wrapf(err, "decode %s", displayPath(path))
	}
	return nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
