package workflow

import (
	"fmt"
	"strings"
)

// RenderTree produces the deterministic, idempotent multi-line
// visualisation of a workflow tree: one line per node, connected by
// box-drawing prefixes, with node-specific edge labels (see the
// per-Kind cases in renderNode). The output always ends in a newline.
func RenderTree(root Workflow) string {
	var b strings.Builder
	renderNode(&b, root, "", "└── ", "")
	return b.String()
}

type renderEdge struct {
	label    string
	workflow Workflow
}

func renderNode(b *strings.Builder, w Workflow, prefix, connector, label string) {
	if saga, ok := w.(*SagaWorkflow); ok {
		b.WriteString(prefix + connector + label + nodeDisplay(w) + "\n")
		childPrefix := extendPrefix(prefix, connector)
		for i, step := range saga.Steps {
			stepConnector := connectorFor(i, len(saga.Steps))
			b.WriteString(fmt.Sprintf("%s%sSTEP %d: %s\n", childPrefix, stepConnector, i+1, step.StepName))
			stepChildPrefix := extendPrefix(childPrefix, stepConnector)
			if step.Compensation != nil {
				renderNode(b, step.Action, stepChildPrefix, "├── ", "ACTION -> ")
				renderNode(b, step.Compensation, stepChildPrefix, "└── ", "REVERT -> ")
			} else {
				renderNode(b, step.Action, stepChildPrefix, "└── ", "ACTION -> ")
			}
		}
		return
	}

	b.WriteString(prefix + connector + label + nodeDisplay(w) + "\n")

	if js, ok := w.(*JavascriptWorkflow); ok {
		childPrefix := extendPrefix(prefix, connector)
		b.WriteString(fmt.Sprintf("%s└── SRC -> %q (eval)\n", childPrefix, js.scriptOrigin()))
		return
	}

	edges := childEdges(w)
	if len(edges) == 0 {
		return
	}
	childPrefix := extendPrefix(prefix, connector)
	for i, e := range edges {
		renderNode(b, e.workflow, childPrefix, connectorFor(i, len(edges)), e.label)
	}
}

func childEdges(w Workflow) []renderEdge {
	switch n := w.(type) {
	case *SequentialWorkflow:
		return plainEdges(n.Steps)
	case *ParallelWorkflow:
		return plainEdges(n.Branches)
	case *ConditionalWorkflow:
		edges := []renderEdge{{label: "When True -> ", workflow: n.WhenTrue}}
		if n.WhenFalse != nil {
			edges = append(edges, renderEdge{label: "When False -> ", workflow: n.WhenFalse})
		}
		return edges
	case *DynamicBranchingWorkflow:
		edges := make([]renderEdge, 0, len(n.Cases)+1)
		for _, c := range n.Cases {
			edges = append(edges, renderEdge{label: fmt.Sprintf("CASE %q -> ", c.Key), workflow: c.Branch})
		}
		if n.Default != nil {
			edges = append(edges, renderEdge{label: "DEFAULT -> ", workflow: n.Default})
		}
		return edges
	case *ForEachWorkflow:
		label := fmt.Sprintf("FOR EACH (%s IN %s) -> ", n.ItemVariable, n.ItemsKey)
		return []renderEdge{{label: label, workflow: n.Body}}
	case *RepeatWorkflow:
		label := fmt.Sprintf("REPEAT %d TIMES (index: %s) -> ", n.Times, n.indexVariable())
		return []renderEdge{{label: label, workflow: n.Body}}
	case *FallbackWorkflow:
		return []renderEdge{
			{label: "TRY (Primary) -> ", workflow: n.Primary},
			{label: "ON FAILURE -> ", workflow: n.Fallback},
		}
	case *RateLimitedWorkflow:
		return []renderEdge{{workflow: n.Child}}
	case *TimeoutWorkflow:
		return []renderEdge{{workflow: n.Child}}
	default:
		return nil
	}
}

func plainEdges(children []Workflow) []renderEdge {
	edges := make([]renderEdge, len(children))
	for i, c := range children {
		edges[i] = renderEdge{workflow: c}
	}
	return edges
}

func nodeDisplay(w Workflow) string {
	if w.Kind() == KindTask {
		return w.Name() + " (Task)"
	}
	return w.Name() + " [" + containerTypeLabel(w.Kind()) + "]"
}

func containerTypeLabel(k Kind) string {
	switch k {
	case KindRateLimited:
		return "Rate-Limited"
	case KindScript:
		return "JavaScript"
	default:
		return string(k)
	}
}

func connectorFor(index, total int) string {
	if index == total-1 {
		return "└── "
	}
	return "├── "
}

func extendPrefix(prefix, connector string) string {
	if connector == "├── " {
		return prefix + "│   "
	}
	return prefix + "    "
}
