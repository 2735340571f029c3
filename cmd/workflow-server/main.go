// Command workflow-server exposes registered workflow definitions over
// HTTP: build-and-execute against a per-request Context, tree rendering,
// and a listing of what is registered. It also serves /healthz and
// /metrics, the same shell every long-running binary in this module
// uses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowkernel/workflow/assembly"
	"github.com/flowkernel/workflow/config"
	"github.com/flowkernel/workflow/observability"
	"github.com/flowkernel/workflow/scheduling"
	"github.com/flowkernel/workflow/workflow"
)

var startTime = time.Now()

func main() {
	logger := observability.SetupLogger()
	logger.Info("starting workflow-server")

	cfg := config.Load()
	metrics := observability.NewMetrics()
	pool := scheduling.New(scheduling.Config{Workers: cfg.PoolWorkers, Logger: logger})

	registry := assembly.NewRegistry()
	registerBuiltins(registry, pool)
	logger.Info("definitions registered", "names", registry.Names())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/workflows", listHandler(registry))
	mux.HandleFunc("GET /v1/workflows/{name}/tree", treeHandler(registry))
	mux.HandleFunc("POST /v1/workflows/{name}/execute", executeHandler(registry, metrics, logger))

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: chain(mux, recovery(logger), logging(logger))}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	pool.Stop()
}

type middleware func(http.Handler) http.Handler

func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func recovery(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panicked", "panic", rec, "path", r.URL.Path)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func logging(logger *slog.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

func listHandler(registry *assembly.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"workflows": registry.Names()})
	}
}

func treeHandler(registry *assembly.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		root, ok := lookupAndBuild(registry, r.PathValue("name"), w)
		if !ok {
			return
		}
		fmt.Fprint(w, workflow.RenderTree(root))
	}
}

func executeHandler(registry *assembly.Registry, metrics *observability.Metrics, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		root, ok := lookupAndBuild(registry, r.PathValue("name"), w)
		if !ok {
			return
		}

		var seed map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&seed)
		}
		ctxData := workflow.NewContextFrom(seed)

		log := logger.With("correlation_id", ctxData.CorrelationID.String(), "workflow", root.Name())
		log.Info("executing")

		result := root.Execute(r.Context(), ctxData)
		metrics.Observe(string(root.Kind()), string(result.Status), result.CompletedAt.Sub(result.StartedAt).Seconds())
		metrics.RecordAttempts(root.Name(), result.Attempts)

		w.Header().Set("Content-Type", "application/json")
		if result.IsFailure() {
			log.Warn("execution failed", "status", result.Status, "error", result.Err)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   result.Status,
			"output":   result.Output,
			"duration": result.ExecutionDuration(),
			"error":    errString(result.Err),
		})
	}
}

func lookupAndBuild(registry *assembly.Registry, name string, w http.ResponseWriter) (workflow.Workflow, bool) {
	def, ok := registry.Lookup(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown workflow %q", name), http.StatusNotFound)
		return nil, false
	}
	root, err := assembly.Build(def)
	if err != nil {
		http.Error(w, fmt.Sprintf("building %q: %v", name, err), http.StatusInternalServerError)
		return nil, false
	}
	return root, true
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// registerBuiltins populates the registry with the demo definitions this
// binary serves out of the box; a real deployment links its own
// definitions in the same way.
func registerBuiltins(registry *assembly.Registry, pool *scheduling.Pool) {
	echo := &assembly.Definition{
		Name: "EchoFlow",
		Elements: []assembly.Element{{
			Name:  "echo",
			Order: 0,
			Kind:  assembly.ElementKindTask,
			TaskFactory: func(bc *assembly.BuildContext) (workflow.Task, error) {
				return workflow.TaskFunc{
					FuncName: "echo",
					Fn: func(ctx context.Context, ctxData *workflow.Context) (any, error) {
						return map[string]any{"received_keys": ctxData.Keys()}, nil
					},
				}, nil
			},
		}},
	}

	fanout := &assembly.Definition{
		Name:         "FanOutFlow",
		Parallel:     true,
		ShareContext: false,
		Pool:         pool,
		Refs:         []assembly.Ref{{Name: "echo", Definition: echo}},
		Elements: []assembly.Element{
			{
				Name:  "left",
				Order: 0,
				Kind:  assembly.ElementKindWorkflow,
				WorkflowFactory: func(bc *assembly.BuildContext) (workflow.Workflow, error) {
					w, _ := bc.Ref("echo")
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

	_ = registry.Register(echo)
	_ = registry.Register(fanout)
}
