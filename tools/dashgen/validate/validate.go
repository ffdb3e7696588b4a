// Package validate checks generated dashboards for malformed PromQL and
// references to metrics the application does not export.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog/variants"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings. Errors make validation fail;
// warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard parses every Prometheus query expression in the dashboard and
// checks the referenced metric names against known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result
	for _, p := range dash.Panels {
		if p.Panel != nil {
			checkPanel(p.Panel, known, &res)
		}
		if p.RowPanel != nil {
			for i := range p.RowPanel.Panels {
				checkPanel(&p.RowPanel.Panels[i], known, &res)
			}
		}
	}
	return res
}

func checkPanel(p *dashboard.Panel, known map[string]bool, res *Result) {
	title := ""
	if p.Title != nil {
		title = *p.Title
	}
	for _, tgt := range p.Targets {
		expr := exprOf(tgt)
		if expr == "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("panel %q: target with no expression", title))
			continue
		}
		checkExpr(title, expr, known, res)
	}
}

func exprOf(tgt variants.Dataquery) string {
	switch q := tgt.(type) {
	case prometheus.Dataquery:
		return q.Expr
	case *prometheus.Dataquery:
		return q.Expr
	default:
		return ""
	}
}

func checkExpr(panel, expr string, known map[string]bool, res *Result) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors,
			fmt.Sprintf("panel %q: invalid PromQL %q: %v", panel, expr, err))
		return
	}

	//nolint:errcheck // the visitor never returns an error
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors,
				fmt.Sprintf("panel %q: unknown metric %q", panel, vs.Name))
		}
		return nil
	})
}

// knownMetric accepts exact names plus histogram series suffixes of a
// known base metric.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if strings.HasSuffix(name, suffix) && known[strings.TrimSuffix(name, suffix)] {
			return true
		}
	}
	return false
}
