package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/haijima/clusters/internal/analysis"
	"github.com/haijima/clusters/internal/connectivity"
	"github.com/haijima/clusters/internal/render"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewAnalyzeCmd(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "analyze"
	cmd.Short = "Find the connected components of a graph"
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runAnalyze(cmd, v, fs) }

	SetInputFlags(cmd)
	cmd.Flags().String("algorithm", "", "The `algorithm` to run {"+strings.Join(connectivity.Names(), "|")+"}; overrides the input's")
	cmd.Flags().String("format", "table", "The output format {"+strings.Join(render.TableFormats, "|")+"|json|dot}")
	cmd.Flags().Bool("summary", false, "Print summary only")
	cmd.Flags().String("filter", "", "The CEL `expression` selecting components to print, e.g. 'size > 2'")

	return cmd
}

func runAnalyze(cmd *cobra.Command, v *viper.Viper, fs afero.Fs) error {
	file := v.GetString("file")
	algorithm := v.GetString("algorithm")
	format := v.GetString("format")
	summaryOnly := v.GetBool("summary")
	filterExpr := v.GetString("filter")
	if !render.IsTableFormat(format) && format != "json" && format != "dot" {
		return errors.Newf("unknown format: %s", format)
	}
	filter, err := analysis.NewFilter(filterExpr)
	if err != nil {
		return err
	}

	var req analysis.Request
	if err := readInput(cmd, fs, file, &req); err != nil {
		return err
	}
	if algorithm != "" {
		req.Algorithm = algorithm
	}

	res, err := analysis.Analyze(cmd.Context(), &req)
	if err != nil {
		return err
	}
	if filterExpr != "" {
		slog.Debug("filtering components", "filter", filter.String())
	}
	components, groups, err := filter.Apply(res.ComponentInfo)
	if err != nil {
		return err
	}

	switch {
	case format == "json":
		if filterExpr != "" {
			res.ComponentInfo = components
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case format == "dot":
		if filterExpr == "" {
			groups = nil
		}
		return render.WriteDotGraph(cmd.OutOrStdout(), render.NewDotGraph("clusters", res, groups))
	}

	if err := printSummary(cmd.OutOrStdout(), res, len(components)); err != nil {
		return err
	}
	if summaryOnly {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return printComponents(cmd.OutOrStdout(), format, components, groups)
}

func printComponents(w io.Writer, format string, components []connectivity.Component, groups []int) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"group", "size", "edges", "density", "nodes"})
	for i, c := range components {
		t.AppendRow(table.Row{groups[i], c.Size, c.Edges, fmt.Sprintf("%.2f", c.Density), joinInts(c.Nodes)})
	}
	return render.Table(t, format)
}

func joinInts(s []int) string {
	var sb strings.Builder
	for i, n := range s {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprint(&sb, n)
	}
	return sb.String()
}

const tmplSummary = `{{title "Summary"}}
  {{key "algorithm"}}          : {{.Statistics.Algorithm}}
  {{key "components"}}         : {{.Components}}{{if ne .shown .Components}} ({{.shown}} shown){{end}}
  {{key "isolated nodes"}}     : {{.Statistics.IsolatedNodes}}
  {{key "largest component"}}  : {{.Statistics.LargestComponent}}
  {{key "smallest component"}} : {{.Statistics.SmallestComponent}}
  {{key "average size"}}       : {{.Statistics.AvgComponentSize}}
  {{key "edges"}}              : {{.Statistics.TotalEdges}}
  {{key "density"}}            : {{.Statistics.Density}}
  {{key "execution time"}}     : {{.Statistics.ExecutionTime}}
`

func printSummary(w io.Writer, res *analysis.Result, shown int) error {
	data := map[string]any{
		"Components": res.Components,
		"Statistics": res.Statistics,
		"shown":      shown,
	}
	return templateRender(w, "summary", tmplSummary, data)
}

var tmplFuncs = template.FuncMap{
	"title": color.CyanString,
	"key":   color.MagentaString,
}

func templateRender(w io.Writer, name string, tmpl string, data map[string]any) error {
	t, err := template.New(name).Funcs(tmplFuncs).Parse(tmpl)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = t.Execute(&buf, data); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
