// Command workflow-cli works a registry of workflow definitions from
// the command line: list them, render their trees, execute one against
// a seeded Context. It also evaluates ad-hoc JavaScript files as
// single-node workflows for quick script testing.
//
// Usage:
//
//	workflow-cli list
//	workflow-cli tree NAME
//	workflow-cli run NAME [--context-file FILE.json]
//	workflow-cli eval SCRIPT.js [--context-file FILE.json] [--timeout 30s]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowkernel/workflow/assembly"
	"github.com/flowkernel/workflow/scheduling"
	"github.com/flowkernel/workflow/scripting"
	"github.com/flowkernel/workflow/workflow"
)

var version = "dev"

func main() {
	var contextFile string
	var timeout time.Duration
	var resultKey string

	registry := assembly.NewRegistry()
	registerBuiltins(registry)

	rootCmd := &cobra.Command{
		Use:           "workflow-cli",
		Short:         "workflow-cli — list, render, and run workflow definitions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered workflow definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	treeCmd := &cobra.Command{
		Use:   "tree NAME",
		Short: "Print the tree rendering of a registered definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := lookupAndBuild(registry, args[0])
			if err != nil {
				return err
			}
			fmt.Print(workflow.RenderTree(root))
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Build and execute a registered definition, printing the Result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := lookupAndBuild(registry, args[0])
			if err != nil {
				return err
			}
			return execute(root, contextFile, 0)
		},
	}
	runCmd.Flags().StringVar(&contextFile, "context-file", "", "JSON object to seed the workflow Context")

	evalCmd := &cobra.Command{
		Use:   "eval SCRIPT",
		Short: "Execute a JavaScript file as a single-node workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := buildScriptWorkflow(args[0], resultKey)
			if err != nil {
				return err
			}
			return execute(node, contextFile, timeout)
		},
	}
	evalCmd.Flags().StringVar(&contextFile, "context-file", "", "JSON object to seed the workflow Context")
	evalCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "wall-clock bound on script execution")
	evalCmd.Flags().StringVar(&resultKey, "result-key", "", "Context key to also write the script's return value under")

	rootCmd.AddCommand(listCmd, treeCmd, runCmd, evalCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func lookupAndBuild(registry *assembly.Registry, name string) (workflow.Workflow, error) {
	def, ok := registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown workflow %q (try: workflow-cli list)", name)
	}
	return assembly.Build(def)
}

func buildScriptWorkflow(path, resultKey string) (workflow.Workflow, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	provider := fileScript{path: path, source: string(source)}
	node := workflow.NewJavascriptWorkflow(path, provider, scripting.NewGojaEngine())
	node.ResultKey = resultKey
	return node, nil
}

func execute(root workflow.Workflow, contextFile string, timeout time.Duration) error {
	ctxData, err := loadContext(contextFile)
	if err != nil {
		return err
	}

	if timeout > 0 {
		root = workflow.NewTimeoutWorkflow(root.Name(), root, timeout)
	}

	result := root.Execute(context.Background(), ctxData)

	fmt.Printf("status: %s\n", result.Status)
	fmt.Printf("duration: %s\n", result.ExecutionDuration())
	if result.IsFailure() {
		fmt.Fprintf(os.Stderr, "error: %v\n", result.Err)
		os.Exit(1)
	}
	if result.Output != nil {
		encoded, err := json.MarshalIndent(result.Output, "", "  ")
		if err == nil {
			fmt.Println(string(encoded))
		} else {
			fmt.Printf("%v\n", result.Output)
		}
	}
	return nil
}

func loadContext(path string) (*workflow.Context, error) {
	if path == "" {
		return workflow.NewContext(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}
	var seed map[string]any
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parsing context file: %w", err)
	}
	return workflow.NewContextFrom(seed), nil
}

type fileScript struct {
	path   string
	source string
}

func (f fileScript) Source() (string, error) { return f.source, nil }
func (f fileScript) Origin() string          { return f.path }

// registerBuiltins populates the CLI's registry with its own demo
// definitions (GreetFlow and a FanOutFlow over it; the server binary
// registers a different set), so list/tree/run have something to
// operate on out of the box.
func registerBuiltins(registry *assembly.Registry) {
	pool := scheduling.New(scheduling.Config{Workers: 4})

	greet := &assembly.Definition{
		Name: "GreetFlow",
		Elements: []assembly.Element{
			{
				Name:  "greet",
				Order: 0,
				Kind:  assembly.ElementKindTask,
				TaskFactory: func(bc *assembly.BuildContext) (workflow.Task, error) {
					return workflow.TaskFunc{
						FuncName: "greet",
						Fn: func(ctx context.Context, ctxData *workflow.Context) (any, error) {
							name, ok := workflow.GetTyped[string](ctxData, "name")
							if !ok {
								name = "world"
							}
							return "hello, " + name, nil
						},
					}, nil
				},
			},
		},
	}

	fanout := &assembly.Definition{
		Name:         "FanOutFlow",
		Parallel:     true,
		ShareContext: true,
		Pool:         pool,
		Refs:         []assembly.Ref{{Name: "greet", Definition: greet}},
		Elements: []assembly.Element{
			{
				Name:  "left",
				Order: 0,
				Kind:  assembly.ElementKindWorkflow,
				WorkflowFactory: func(bc *assembly.BuildContext) (workflow.Workflow, error) {
					w, _ := bc.Ref("greet")
					return w, nil
				},
			},
			{
				Name:  "right",
				Order: 1,
				Kind:  assembly.ElementKindTask,
				TaskFactory: func(bc *assembly.BuildContext) (workflow.Task, error) {
					return workflow.TaskFunc{
						FuncName: "stamp",
						Fn: func(ctx context.Context, ctxData *workflow.Context) (any, error) {
							ctxData.Put("stamped", true)
							return "stamped", nil
						},
					}, nil
				},
			},
		},
	}

	_ = registry.Register(greet)
	_ = registry.Register(fanout)
}
