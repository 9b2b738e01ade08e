package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/August26/ipintel-go/internal/analytics"
	"github.com/August26/ipintel-go/internal/checker"
	"github.com/August26/ipintel-go/internal/config"
	"github.com/August26/ipintel-go/internal/geo"
	"github.com/August26/ipintel-go/internal/intel"
	"github.com/August26/ipintel-go/internal/logging"
	"github.com/August26/ipintel-go/internal/model"
	"github.com/August26/ipintel-go/internal/output"
	"github.com/August26/ipintel-go/internal/parser"
)

func main() {
	defaults := config.Default()

	var (
		configPath  = flag.String("config", "", "optional path to a YAML config file")
		singleIP    = flag.String("ip", "", "single IP to look up")
		inputFile   = flag.String("input", "", "path to file with one target per line")
		queryFlags  = flag.String("flags", "", "query flags passed through to the service")
		host        = flag.String("host", defaults.Service.Host, "service host")
		port        = flag.Int("port", defaults.Service.Port, "service port (443 uses TLS)")
		contact     = flag.String("contact", defaults.Service.Contact, "contact identifier sent with queries")
		timeoutMs   = flag.Int("timeout-ms", defaults.Service.TimeoutMs, "per-lookup timeout in milliseconds")
		socks5      = flag.String("socks5", "", "route lookups through a SOCKS5 proxy (host:port or host:port:user:pass)")
		geoipCity   = flag.String("geoip-city", "", "path to a MaxMind city database for enrichment")
		geoipASN    = flag.String("geoip-asn", "", "optional MaxMind ASN database for provider names")
		outputFile  = flag.String("output", "", "optional path to write results (json/csv/xlsx)")
		outputFmt   = flag.String("format", "json", "output format: json | csv | xlsx")
		concurrency = flag.Int("concurrency", defaults.Run.Concurrency, "number of concurrent lookups")
		ping        = flag.Bool("ping", false, "only check that the service is reachable, then exit")
		verbose     = flag.Bool("verbose", false, "enable debug logs")
	)

	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	// Explicit flags win over file and environment values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Service.Host = *host
		case "port":
			cfg.Service.Port = *port
		case "contact":
			cfg.Service.Contact = *contact
		case "timeout-ms":
			cfg.Service.TimeoutMs = *timeoutMs
		case "flags":
			cfg.Service.Flags = *queryFlags
		case "socks5":
			cfg.Service.SOCKS5 = *socks5
		case "geoip-city":
			cfg.Run.GeoIPCity = *geoipCity
		case "geoip-asn":
			cfg.Run.GeoIPASN = *geoipASN
		case "concurrency":
			cfg.Run.Concurrency = *concurrency
		case "verbose":
			cfg.Run.Verbose = *verbose
		}
	})

	log := logging.NewLogger(cfg.Run.Verbose)

	opts := []intel.Option{
		intel.WithHost(cfg.Service.Host),
		intel.WithPort(cfg.Service.Port),
		intel.WithContact(cfg.Service.Contact),
		intel.WithTimeout(cfg.Service.Timeout()),
	}
	if cfg.Service.SOCKS5 != "" {
		addr, user, pass, err := config.SplitSOCKS5(cfg.Service.SOCKS5)
		if err != nil {
			log.Error("invalid socks5 spec", "err", err)
			os.Exit(1)
		}
		opts = append(opts, intel.WithSOCKS5(addr, user, pass))
	}

	client, err := intel.New(opts...)
	if err != nil {
		log.Error("failed to build client", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *ping {
		if err := client.Ping(ctx); err != nil {
			log.Error("service unreachable", "err", err)
			os.Exit(1)
		}
		log.Info("service reachable",
			"host", cfg.Service.Host,
			"port", cfg.Service.Port,
		)
		return
	}

	var targets []model.Target
	switch {
	case *singleIP != "":
		targets = []model.Target{{IP: *singleIP, Raw: *singleIP}}
	case *inputFile != "":
		targets, err = parser.LoadFromFile(*inputFile)
		if err != nil {
			log.Error("failed to load targets", "err", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--ip or --input is required")
		os.Exit(1)
	}

	log.Info("starting ipintel-go",
		"targets", len(targets),
		"host", cfg.Service.Host,
		"port", cfg.Service.Port,
		"timeout_ms", cfg.Service.TimeoutMs,
		"concurrency", cfg.Run.Concurrency,
	)

	runCfg := model.RunConfig{
		QueryFlags:  cfg.Service.Flags,
		Concurrency: cfg.Run.Concurrency,
	}

	if cfg.Run.GeoIPCity != "" {
		resolver, err := geo.Open(cfg.Run.GeoIPCity, cfg.Run.GeoIPASN)
		if err != nil {
			log.Error("failed to open geo databases", "err", err)
			os.Exit(1)
		}
		defer resolver.Close()
		runCfg.Resolver = resolver
	}

	start := time.Now()
	results := checker.RunBatch(ctx, client, targets, runCfg)
	duration := time.Since(start)

	stats := analytics.Compute(results, duration)

	log.Info("batch finished",
		"total_ms", stats.TotalProcessingTimeMs,
		"succeeded", stats.Succeeded,
		"total", stats.TotalTargets,
	)

	// Print table and summary to stdout
	output.PrintResultsTable(os.Stdout, results)
	output.PrintSummary(os.Stdout, stats)

	if *outputFile != "" {
		if err := output.WriteFile(*outputFile, *outputFmt, results, stats); err != nil {
			log.Error("failed to write output file", "err", err, "path", *outputFile)
		} else {
			log.Info("results written",
				"path", *outputFile,
				"format", *outputFmt,
			)
		}
	}
}
