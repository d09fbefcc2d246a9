package cmd

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-shellnav/internal/logging"
	"github.com/mattsolo1/grove-shellnav/pkg/config"
	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/host/hostmetrics"
	"github.com/mattsolo1/grove-shellnav/pkg/host/memhost"
	"github.com/mattsolo1/grove-shellnav/pkg/host/sqlhost"
	"github.com/mattsolo1/grove-shellnav/pkg/location"
	"github.com/mattsolo1/grove-shellnav/pkg/pathtype"
	"github.com/mattsolo1/grove-shellnav/pkg/resolver"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

// App carries what the subcommands share. The root command builds it once
// per invocation.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	JSON     bool
	Host     host.Host
	Factory  *factory.Factory
	Resolver *resolver.Resolver
	Registry *prometheus.Registry // nil unless metrics are enabled

	closers []func() error
}

// NewApp builds an App without opening a namespace host.
func NewApp(cfg *config.Config, logger *logrus.Logger) *App {
	return &App{Config: cfg, Log: logger}
}

// OpenHost opens the configured namespace and wires the factory and resolver
// on top of it.
func (a *App) OpenHost() error {
	var h host.Host
	switch a.Config.Host {
	case config.HostMemory:
		mh, err := memhost.Load(a.Config.Fixture)
		if err != nil {
			return fmt.Errorf("load fixture: %w", err)
		}
		h = mh
	case config.HostSQLite:
		sh, err := sqlhost.Open(a.Config.DB)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, sh.Close)
		h = sh
	default:
		return fmt.Errorf("unknown host kind %q", a.Config.Host)
	}

	if a.Config.Metrics {
		a.Registry = prometheus.NewRegistry()
		m, err := hostmetrics.NewMetrics(a.Registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		h = hostmetrics.Wrap(h, m)
	}

	a.Host = h
	a.Factory = factory.New(h, factory.WithLogger(logging.Component(a.Log, "factory")))
	a.Resolver = resolver.New(a.Factory, resolver.WithLogger(logging.Component(a.Log, "resolver")))
	a.Log.WithField("host", a.Config.Host).Debug("namespace opened")
	return nil
}

// ReportMetrics logs every collected counter sample at info level.
func (a *App) ReportMetrics() error {
	if a.Registry == nil {
		return nil
	}
	families, err := a.Registry.Gather()
	if err != nil {
		return err
	}
	log := logging.Component(a.Log, "metrics")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			fields := logrus.Fields{"value": m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				fields[lp.GetName()] = lp.GetValue()
			}
			log.WithFields(fields).Info(mf.GetName())
		}
	}
	return nil
}

// locate resolves input through the factory. A file-system path the host
// does not know becomes a path-only location.
func (a *App) locate(input string) (*location.Location, error) {
	loc, err := a.Factory.Create(input)
	if errors.Is(err, shellerr.ErrNotFound) && pathtype.Classify(input) == pathtype.FileSystemPath {
		a.Log.WithField("input", input).Debug("not in namespace, using path only")
		return location.FromPath(input), nil
	}
	return loc, err
}

// Close releases the host.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
