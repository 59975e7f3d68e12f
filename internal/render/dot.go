package render

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/haijima/clusters/internal/analysis"
	"golang.org/x/exp/maps"
)

// Palette is d3's category10, indexed by group number.
var Palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"}

// GroupColor returns the palette color of a 1-based group number.
func GroupColor(group int) string {
	if group < 1 {
		return Palette[0]
	}
	return Palette[(group-1)%len(Palette)]
}

type DotGraph struct {
	Title    string
	Clusters []*DotCluster
	Edges    []*DotEdge
}

type DotCluster struct {
	ID    string
	Nodes []*DotNode
	Attrs DotAttrs
}

func (c *DotCluster) String() string {
	return fmt.Sprintf("cluster_%s", c.ID)
}

type DotNode struct {
	ID    string
	Attrs DotAttrs
}

type DotEdge struct {
	From  string
	To    string
	Attrs DotAttrs
}

type DotAttrs map[string]string

// List returns the attributes as key="value", sorted by key.
func (p DotAttrs) List() []string {
	keys := maps.Keys(p)
	slices.Sort(keys)
	l := make([]string, 0, len(p))
	for _, k := range keys {
		l = append(l, fmt.Sprintf("%s=%q", k, p[k]))
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

func (p DotAttrs) Lines() string {
	if len(p) == 0 {
		return ""
	}
	return fmt.Sprintf("%s;", strings.Join(p.List(), "; "))
}

const tmplGraph = `graph {{printf "%q" .Title}} {
    labeljust="l";
    fontname="Verdana";
    fontsize="14";
    node [fontname="Verdana" style="filled"];
{{range .Clusters}}
    subgraph {{printf "%q" .String}} {
        {{.Attrs.Lines}}
{{- range .Nodes}}
        {{printf "%q [ %s ]" .ID .Attrs}}
{{- end}}
    }
{{end}}
{{- range .Edges}}
    {{printf "%q -- %q" .From .To}}{{if .Attrs}} [ {{.Attrs}} ]{{end}}
{{- end}}
}
`

func WriteDotGraph(w io.Writer, g DotGraph) error {
	t, err := template.New("dot").Parse(tmplGraph)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, g); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// NewDotGraph lays out r as one cluster per component. Only components whose
// group is listed in groups are drawn, together with the links between them;
// a nil groups draws everything.
func NewDotGraph(title string, r *analysis.Result, groups []int) DotGraph {
	drawn := make(map[int]bool, len(r.ComponentInfo))
	for g := 1; g <= len(r.ComponentInfo); g++ {
		drawn[g] = groups == nil
	}
	for _, g := range groups {
		drawn[g] = true
	}

	degree := make(map[int]int, len(r.Nodes))
	group := make(map[int]int, len(r.Nodes))
	for _, n := range r.Nodes {
		degree[n.ID] = n.Degree
		group[n.ID] = n.Group
	}

	g := DotGraph{Title: title, Clusters: make([]*DotCluster, 0), Edges: make([]*DotEdge, 0)}
	for i, c := range r.ComponentInfo {
		id := i + 1
		if !drawn[id] {
			continue
		}
		cluster := &DotCluster{
			ID:    strconv.Itoa(id),
			Nodes: make([]*DotNode, 0, len(c.Nodes)),
			Attrs: DotAttrs{"label": fmt.Sprintf("group %d", id)},
		}
		for _, v := range c.Nodes {
			cluster.Nodes = append(cluster.Nodes, &DotNode{
				ID:    strconv.Itoa(v),
				Attrs: DotAttrs{"fillcolor": GroupColor(id), "tooltip": fmt.Sprintf("degree %d", degree[v])},
			})
		}
		g.Clusters = append(g.Clusters, cluster)
	}
	for _, l := range r.Links {
		if !drawn[group[l.Source]] {
			continue
		}
		g.Edges = append(g.Edges, &DotEdge{From: strconv.Itoa(l.Source), To: strconv.Itoa(l.Target)})
	}
	return g
}
