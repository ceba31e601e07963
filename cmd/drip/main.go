package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cmd "github.com/evm-faucet/drip/cmd/drip/services"
	"github.com/evm-faucet/drip/config"
	"github.com/evm-faucet/drip/internal/drip"
	dripLogger "github.com/evm-faucet/drip/internal/logger"
	"github.com/evm-faucet/drip/internal/tracing"
)

const serviceName = "drip"

func main() {
	err := run()
	if err != nil {
		log.Fatalf("failed to run drip: %v", err)
	}

	os.Exit(0)
}

func run() error {
	configDir, startWorker, startReconciler, dumpConfigFile := parseFlags()

	dripConfig, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	if dumpConfigFile != "" {
		return config.DumpConfig(dumpConfigFile)
	}

	logger, err := dripLogger.NewLogger(serviceName, dripConfig.LogLevel, dripConfig.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get host name: %v", err)
	}

	logger = logger.With(slog.String("host", hostname))

	logger.Info("Starting drip")

	shutdownFns := make([]func(), 0)

	shutdownCh := make(chan string, 1)

	if dripConfig.Tracing.IsEnabled() {
		cleanup, err := tracing.Enable(logger, serviceName, dripConfig.Tracing.DialAddr, dripConfig.Tracing.KeyValueAttributes)
		if err != nil {
			logger.Error("failed to enable tracing", slog.String("err", err.Error()))
		} else {
			shutdownFns = append(shutdownFns, cleanup)
		}
	}

	go func() {
		if dripConfig.ProfilerAddr != "" {
			logger.Info(fmt.Sprintf("Starting profiler on http://%s/debug/pprof", dripConfig.ProfilerAddr))

			err := http.ListenAndServe(dripConfig.ProfilerAddr, nil)
			if err != nil {
				logger.Error("failed to start profiler server", slog.String("err", err.Error()))
			}
		}
	}()

	var stats *drip.Stats
	if dripConfig.Prometheus.IsEnabled() {
		stats = drip.NewStats()
		err = stats.Register(prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("failed to register stats: %v", err)
		}

		go func() {
			logger.Info("Starting prometheus", slog.String("endpoint", dripConfig.Prometheus.Endpoint))
			mux := http.NewServeMux()
			mux.Handle(dripConfig.Prometheus.Endpoint, promhttp.Handler())
			err := http.ListenAndServe(dripConfig.Prometheus.Addr, mux)
			if err != nil {
				logger.Error("failed to start prometheus server", slog.String("err", err.Error()))
			}
		}()
	}

	if !isAnyFlagPassed("worker", "reconciler") {
		logger.Info("No service selected, starting worker")
		startWorker = true
		startReconciler = dripConfig.Reconciler != nil && dripConfig.Reconciler.Enabled
	}

	clients, err := cmd.NewClients(context.Background(), logger, dripConfig)
	if err != nil {
		appCleanup(logger, shutdownFns)
		return fmt.Errorf("failed to create clients: %v", err)
	}

	if startWorker {
		shutdown, err := cmd.StartWorker(logger, dripConfig, clients, stats, shutdownCh)
		if err != nil {
			clients.Close()
			appCleanup(logger, shutdownFns)
			return fmt.Errorf("failed to start worker: %v", err)
		}
		shutdownFns = append(shutdownFns, shutdown)
	}

	if startReconciler {
		shutdown, err := cmd.StartReconciler(logger, dripConfig, clients, stats)
		if err != nil {
			appCleanup(logger, shutdownFns)
			clients.Close()
			return fmt.Errorf("failed to start reconciler: %v", err)
		}
		shutdownFns = append(shutdownFns, shutdown)
	}

	// setup signal catching
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case reason := <-shutdownCh:
		logger.Info("Received shutdown signal", slog.String("reason", reason))
	case sig := <-signalChan:
		logger.Info("Received shutdown signal", slog.String("reason", sig.String()))
	}

	appCleanup(logger, shutdownFns)
	clients.Close()

	return nil
}

func appCleanup(logger *slog.Logger, shutdownFns []func()) {
	logger.Info("cleaning up")

	// stop services before tracing
	for i := len(shutdownFns) - 1; i >= 0; i-- {
		shutdownFns[i]()
	}
}

func parseFlags() (string, bool, bool, string) {
	startWorker := flag.Bool("worker", false, "start drip worker")
	startReconciler := flag.Bool("reconciler", false, "start reconciler")
	help := flag.Bool("help", false, "Show help")
	dumpConfigFile := flag.String("dump_config", "", "dump config to specified file and exit")
	configDir := flag.String("config", "", "path to configuration file")

	flag.Parse()

	if *help {
		fmt.Println("usage: main [options]")
		fmt.Println("where options are:")
		fmt.Println("")
		fmt.Println("    -worker=<true|false>")
		fmt.Println("          whether to start the drip worker (default=true)")
		fmt.Println("")
		fmt.Println("    -reconciler=<true|false>")
		fmt.Println("          whether to start the reconciler (default=reconciler.enabled)")
		fmt.Println("")
		fmt.Println("    -config=/location")
		fmt.Println("          directory to look for config (default='')")
		fmt.Println("")
		fmt.Println("    -dump_config=/file.yaml")
		fmt.Println("          dump config to specified file and exit (default='config/dumped_config.yaml')")
		fmt.Println("")
		os.Exit(0)
	}

	return *configDir, *startWorker, *startReconciler, *dumpConfigFile
}

func isAnyFlagPassed(flags ...string) bool {
	for _, name := range flags {
		found := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == name {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}
