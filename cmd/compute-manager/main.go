package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apiserver "github.com/dcm-project/compute-provisioner/internal/api_server"
	"github.com/dcm-project/compute-provisioner/internal/config"
	"github.com/dcm-project/compute-provisioner/internal/handlers"
	"github.com/dcm-project/compute-provisioner/internal/logging"
	"github.com/dcm-project/compute-provisioner/internal/metrics"
	"github.com/dcm-project/compute-provisioner/internal/provider"
	awsprovider "github.com/dcm-project/compute-provisioner/internal/provider/aws"
	"github.com/dcm-project/compute-provisioner/internal/provider/gcp"
	"github.com/dcm-project/compute-provisioner/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(log.NewLogfmtLogger(os.Stderr), "failed to load config", err)
	}
	logger := logging.New(os.Stderr, cfg.Service.LogFormat, cfg.Service.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry, err := buildRegistry(ctx, cfg, logger)
	if err != nil {
		fatal(logger, "failed to initialize providers", err)
	}

	computeService := service.NewComputeService(registry, metrics.New(reg), logging.Component(logger, "service"), cfg.Dispatch.MaxParallel)
	handler := handlers.NewHandler(computeService, logging.Component(logger, "handlers"))

	listener, err := net.Listen("tcp", cfg.Service.Address)
	if err != nil {
		fatal(logger, "failed to listen", err)
	}

	srv := apiserver.New(cfg, listener, handler, reg, logging.Component(logger, "api_server"))

	level.Info(logger).Log("msg", "starting server", "address", listener.Addr().String(), "providers", len(registry.Names()))
	if err := srv.Run(ctx); err != nil {
		fatal(logger, "server failed", err)
	}
}

func buildRegistry(ctx context.Context, cfg *config.Config, logger log.Logger) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	if cfg.AWS.Enabled {
		awsCfg, err := awsprovider.LoadConfig(ctx, cfg.AWS.DefaultRegion, cfg.AWS.Profile)
		if err != nil {
			return nil, err
		}
		backend := awsprovider.NewEC2Backend(awsprovider.NewClientFactory(awsCfg), cfg.AWS.DefaultRegion, cfg.AWS.Regions)
		if err := registry.Register(awsprovider.NewAdapter(backend, logging.Component(logger, "aws"))); err != nil {
			return nil, err
		}
	}

	if cfg.GCP.Enabled {
		backend := gcp.NewRESTBackend(gcp.Options{
			Endpoint:      cfg.GCP.Endpoint,
			Project:       cfg.GCP.Project,
			AccessToken:   cfg.GCP.AccessToken,
			ImageProjects: cfg.GCP.ImageProjects,
			Network:       cfg.GCP.Network,
			Timeout:       cfg.GCP.Timeout,
			RetryCount:    cfg.GCP.RetryCount,
			OperationPoll: cfg.GCP.OperationPoll,
		})
		if err := registry.Register(gcp.NewAdapter(backend, logging.Component(logger, "gcp"))); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func fatal(logger log.Logger, msg string, err error) {
	level.Error(logger).Log("msg", msg, "err", err)
	os.Exit(1)
}
