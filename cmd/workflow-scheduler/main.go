// Command workflow-scheduler runs a fixed workflow.Workflow tree on a
// cron schedule, logging and recording metrics for each tick's Result.
// It carries none of the durable-schedule bookkeeping a persisted
// system would need (due-time tracking, idempotency keys, a queue
// publisher) since workflow-definition persistence is out of scope;
// what it keeps is the recurring-trigger shape itself.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/flowkernel/workflow/config"
	"github.com/flowkernel/workflow/observability"
	"github.com/flowkernel/workflow/workflow"
)

func main() {
	logger := observability.SetupLogger()
	logger.Info("starting workflow-scheduler")

	cfg := config.Load()
	metrics := observability.NewMetrics()

	root := heartbeatWorkflow()

	spec := os.Getenv("WORKFLOW_CRON_SPEC")
	if spec == "" {
		spec = "@every 1m"
	}

	sched := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))
	entryID, err := sched.AddFunc(spec, tick(root, metrics, logger))
	if err != nil {
		logger.Error("invalid cron spec", "spec", spec, "error", err)
		os.Exit(1)
	}
	logger.Info("registered schedule", "spec", spec, "entry_id", entryID)

	sched.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	go func() {
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
	_ = server.Shutdown(ctx)
	<-sched.Stop().Done()
}

// tick builds the cron.FuncJob run on every fire: a fresh Context per
// run, the root Workflow executed against it, and the outcome logged
// and recorded to metrics.
func tick(root workflow.Workflow, metrics *observability.Metrics, logger *slog.Logger) func() {
	return func() {
		ctxData := workflow.NewContext()
		result := root.Execute(context.Background(), ctxData)

		metrics.Observe(string(root.Kind()), string(result.Status), result.CompletedAt.Sub(result.StartedAt).Seconds())
		metrics.RecordAttempts(root.Name(), result.Attempts)

		log := logger.With("correlation_id", ctxData.CorrelationID.String())
		if result.IsFailure() {
			log.Error("scheduled execution failed", "status", result.Status, "error", result.Err)
			return
		}
		log.Info("scheduled execution completed", "status", result.Status, "duration", result.ExecutionDuration())
	}
}

// heartbeatWorkflow is the built-in demo tree this binary triggers,
// standing in for whatever tree a real deployment would load from a
// registered assembly.Definition.
func heartbeatWorkflow() workflow.Workflow {
	task := workflow.TaskFunc{
		FuncName: "heartbeat",
		Fn: func(ctx context.Context, ctxData *workflow.Context) (any, error) {
			ctxData.Put("heartbeat.fired_at", ctxData.CorrelationID.String())
			return "ok", nil
		},
	}
	return workflow.NewTaskWorkflow("Heartbeat", task)
}
