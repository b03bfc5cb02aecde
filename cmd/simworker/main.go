// Command simworker consumes simulation jobs from NATS queue groups, runs
// them through the converter engine, and replies with results. It also
// serves health and metrics endpoints for operations.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/voltforge/simengine/engine/devicelib"
	"github.com/voltforge/simengine/engine/topology"
	"github.com/voltforge/simengine/engine/zvs"
	"github.com/voltforge/simengine/pkg/metrics"
	"github.com/voltforge/simengine/pkg/mid"
	"github.com/voltforge/simengine/pkg/natsutil"
)

// Config holds all environment-based configuration.
type Config struct {
	NATSURL         string
	QueueGroup      string
	SimulateSubject string
	BoundarySubject string
	OpsPort         string
	DeviceCSV       string
	JobsPerSecond   float64
}

func loadConfig() Config {
	return Config{
		NATSURL:         envOr("NATS_URL", nats.DefaultURL),
		QueueGroup:      envOr("QUEUE_GROUP", "simworkers"),
		SimulateSubject: envOr("SIMULATE_SUBJECT", "sim.simulate"),
		BoundarySubject: envOr("BOUNDARY_SUBJECT", "sim.zvs.boundary"),
		OpsPort:         envOr("OPS_PORT", "9090"),
		DeviceCSV:       envOr("DEVICE_CSV", ""),
		JobsPerSecond:   envFloatOr("JOBS_PER_SECOND", 100),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// SimulateRequest is the JSON job body on the simulate subject. A device can
// be named from the library or supplied inline; the name wins when both are
// set, and an unknown name is a failed result, never a silent default.
type SimulateRequest struct {
	Topology   string                 `json:"topology"`
	Params     topology.Params        `json:"params"`
	DeviceName string                 `json:"device_name,omitempty"`
	Device     *topology.DeviceParams `json:"device,omitempty"`
}

// BoundaryRequest is the JSON job body on the boundary subject. A non-zero
// TargetPower additionally runs the optimal-point search.
type BoundaryRequest struct {
	Vin         float64 `json:"vin"`
	Vout        float64 `json:"vout"`
	N           float64 `json:"n"`
	Llk         float64 `json:"llk"`
	Fsw         float64 `json:"fsw"`
	Coss        float64 `json:"coss"`
	Deadtime    float64 `json:"deadtime"`
	PhiMin      float64 `json:"phi_min,omitempty"`
	PhiMax      float64 `json:"phi_max,omitempty"`
	LoadMin     float64 `json:"load_min,omitempty"`
	LoadMax     float64 `json:"load_max,omitempty"`
	GridPoints  int     `json:"grid_points,omitempty"`
	TargetPower float64 `json:"target_power,omitempty"`
}

// BoundaryResponse bundles the sweep output. Error is set instead of the
// grids when the worker could not run the sweep, so an aborted job never
// looks like an empty one.
type BoundaryResponse struct {
	Boundary zvs.BoundaryMap   `json:"boundary"`
	Coverage zvs.Coverage      `json:"coverage"`
	Optimal  *zvs.OptimalPoint `json:"optimal,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// newJobLimiter builds the intake limiter. Burst is floored at one so
// fractional rates still admit jobs one at a time.
func newJobLimiter(perSecond float64) *rate.Limiter {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("worker exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Engine state ---
	registry := topology.NewRegistry()
	library := devicelib.New()
	if cfg.DeviceCSV != "" {
		if err := library.LoadCSV(cfg.DeviceCSV); err != nil {
			return err
		}
		logger.Info("device csv loaded", "path", cfg.DeviceCSV, "devices", len(library.Names()))
	}

	// --- Metrics ---
	reg := metrics.New()
	jobsTotal := reg.Counter("sim_jobs_total", "Simulation jobs received")
	jobsFailed := reg.Counter("sim_jobs_failed_total", "Simulation jobs that produced a failed result")
	jobSeconds := reg.Histogram("sim_job_duration_seconds", "Simulation job duration", nil)
	sweepsTotal := reg.Counter("zvs_sweeps_total", "ZVS boundary sweeps run")
	sweepSeconds := reg.Histogram("zvs_sweep_duration_seconds", "ZVS boundary sweep duration", nil)

	limiter := newJobLimiter(cfg.JobsPerSecond)
	tracer := otel.Tracer("simworker")

	// --- Connect to NATS ---
	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("simworker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return err
	}
	defer nc.Close()

	handleSimulate := func(ctx context.Context, req SimulateRequest) topology.SimulationResult {
		start := time.Now()
		jobsTotal.Inc()
		if err := limiter.Wait(ctx); err != nil {
			jobsFailed.Inc()
			return topology.SimulationResult{Topology: req.Topology, Error: "worker shutting down"}
		}

		_, span := tracer.Start(ctx, "simulate",
			trace.WithAttributes(attribute.String("topology", req.Topology)))
		defer span.End()

		result := runSimulation(registry, library, req)
		if !result.Success {
			jobsFailed.Inc()
			logger.Warn("simulation failed", "topology", req.Topology, "err", result.Error)
		} else {
			logger.Info("simulation done", "topology", req.Topology, "duration", time.Since(start))
		}
		jobSeconds.Since(start)
		return result
	}

	handleBoundary := func(ctx context.Context, req BoundaryRequest) BoundaryResponse {
		start := time.Now()
		sweepsTotal.Inc()
		if err := limiter.Wait(ctx); err != nil {
			return BoundaryResponse{Error: "worker shutting down"}
		}

		_, span := tracer.Start(ctx, "zvs_boundary")
		defer span.End()

		resp := runBoundary(req)
		logger.Info("boundary sweep done", "grid_points", req.GridPoints, "duration", time.Since(start))
		sweepSeconds.Since(start)
		return resp
	}

	simSub, err := natsutil.QueueSubscribe(nc, cfg.SimulateSubject, cfg.QueueGroup, handleSimulate)
	if err != nil {
		return err
	}
	defer simSub.Unsubscribe()

	zvsSub, err := natsutil.QueueSubscribe(nc, cfg.BoundarySubject, cfg.QueueGroup, handleBoundary)
	if err != nil {
		return err
	}
	defer zvsSub.Unsubscribe()

	logger.Info("worker subscribed",
		"simulate", cfg.SimulateSubject,
		"boundary", cfg.BoundarySubject,
		"queue", cfg.QueueGroup,
	)

	// --- Ops server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !nc.IsConnected() {
			http.Error(w, "nats disconnected", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /metrics", reg.Handler())

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.Logger(logger),
		mid.OTel("simworker"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.OpsPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ops server starting", "port", cfg.OpsPort)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	if err := nc.Drain(); err != nil {
		logger.Warn("nats drain", "err", err)
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// runSimulation resolves the topology and device and executes the five-step
// sequence. Unknown names become failed results, never errors: the reply path
// always carries a SimulationResult.
func runSimulation(registry *topology.Registry, library *devicelib.Library, req SimulateRequest) topology.SimulationResult {
	top, err := registry.Create(req.Topology, req.Params)
	if err != nil {
		return topology.SimulationResult{Topology: req.Topology, Params: req.Params, Error: err.Error()}
	}

	dev := topology.DefaultDeviceParams()
	switch {
	case req.DeviceName != "":
		dev, err = library.Params(req.DeviceName)
		if err != nil {
			return topology.SimulationResult{Topology: req.Topology, Params: req.Params, Error: err.Error()}
		}
	case req.Device != nil:
		dev = *req.Device
	}

	return topology.Simulate(top, dev)
}

func runBoundary(req BoundaryRequest) BoundaryResponse {
	cfg := zvs.BoundaryConfig{
		Vin: req.Vin, Vout: req.Vout, N: req.N,
		Llk: req.Llk, Fsw: req.Fsw, Coss: req.Coss, Deadtime: req.Deadtime,
		PhiMin: req.PhiMin, PhiMax: req.PhiMax,
		LoadMin: req.LoadMin, LoadMax: req.LoadMax,
		GridPoints: req.GridPoints,
	}

	m := zvs.Boundary(cfg)
	resp := BoundaryResponse{
		Boundary: m,
		Coverage: zvs.ExtractCoverage(m),
	}
	if req.TargetPower > 0 {
		opt := zvs.FindOptimalPoint(cfg, req.TargetPower)
		resp.Optimal = &opt
	}
	return resp
}
