package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/graeme-hill/lineq-go/lib"
)

type options struct {
	configPath  string
	debug       bool
	lenient     bool
	variable    string
	database    string
	migrations  string
	metricsAddr string
}

func (o *options) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	flags.BoolVar(&o.debug, "debug", false, "use debug log level and print every pipeline stage")
	flags.BoolVar(&o.lenient, "lenient", false, "skip unknown characters and tolerate a missing or repeated '='")
	flags.StringVar(&o.variable, "variable", string(lib.DefaultVariable), "the variable symbol to solve for")
	flags.StringVar(&o.database, "database", "", "Postgres connection string for the history store")
	flags.StringVar(&o.migrations, "migrations", "./migrations", "directory of history store migrations")
	flags.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
}

// config merges the config file, if any, with flags that were set
// explicitly on the command line.
func (o *options) config(cmd *cobra.Command) (lib.Config, error) {
	cfg := lib.DefaultConfig()
	if o.configPath != "" {
		var err error
		cfg, err = lib.LoadConfig(o.configPath)
		if err != nil {
			return lib.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}
	if flags.Changed("lenient") {
		cfg.Lenient = o.lenient
	}
	if flags.Changed("variable") {
		cfg.Variable = o.variable
	}
	if flags.Changed("database") {
		cfg.Database = o.database
	}
	if flags.Changed("migrations") {
		cfg.Migrations = o.migrations
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}
	return cfg, cfg.Validate()
}

// env is everything a subcommand needs once flags and config are resolved.
type env struct {
	cfg         lib.Config
	logger      *logrus.Logger
	interpreter *lib.Interpreter
	history     *lib.History
}

func (o *options) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	var metrics *lib.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics, err = lib.NewMetrics(reg)
		if err != nil {
			return nil, err
		}
		serveMetrics(cfg.MetricsAddr, reg, logger)
	}

	interpreter, err := lib.NewInterpreterFromConfig(cfg, logger, metrics)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, interpreter: interpreter}, nil
}

func (e *env) openHistory(ctx context.Context) error {
	if e.cfg.Database == "" {
		return nil
	}
	history, err := lib.OpenHistory(ctx, e.cfg.Database)
	if err != nil {
		return err
	}
	e.history = history
	return nil
}

func (e *env) close() {
	if e.history != nil {
		if err := e.history.Close(); err != nil {
			e.logger.WithError(err).Warn("closing history database")
		}
	}
}

// record stores an interpretation when a history database is configured.
// Failures are logged, not returned, so a database outage never stops the
// interpreter.
func (e *env) record(ctx context.Context, equation string, solution lib.Solution, interpErr error) {
	if e.history == nil {
		return
	}
	if err := e.history.Record(ctx, equation, solution, interpErr); err != nil {
		e.logger.WithError(err).Warn("could not record interpretation")
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Infof("serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.WithError(err).Error("metrics server stopped")
		}
	}()
}
