package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/haijima/clusters/internal/analysis"
	"github.com/haijima/clusters/internal/graph"
	"github.com/haijima/clusters/internal/render"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCompareCmd(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "compare"
	cmd.Short = "Run every algorithm on the same graph and compare their timings"
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runCompare(cmd, v, fs) }

	SetInputFlags(cmd)
	cmd.Flags().String("format", "table", "The output format {"+strings.Join(render.TableFormats, "|")+"|json}")

	return cmd
}

func runCompare(cmd *cobra.Command, v *viper.Viper, fs afero.Fs) error {
	file := v.GetString("file")
	format := v.GetString("format")
	if !render.IsTableFormat(format) && format != "json" {
		return errors.Newf("unknown format: %s", format)
	}

	var in graph.Input
	if err := readInput(cmd, fs, file, &in); err != nil {
		return err
	}
	c, err := analysis.Compare(cmd.Context(), &in)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"algorithm", "components", "time"})
	for _, name := range c.Names() {
		t.AppendRow(table.Row{name, c[name].Components, fmt.Sprintf("%dms", c[name].Time)})
	}
	if err := render.Table(t, format); err != nil {
		return err
	}
	if format == "table" || format == "simple" {
		if c.Agree() {
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("all algorithms agree"))
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), color.RedString("algorithms disagree"))
		}
	}
	return nil
}
