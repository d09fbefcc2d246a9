// Package hostmetrics instruments a host.Host with Prometheus metrics.
//
// Every call on the wrapped host is counted by operation and outcome, and its
// latency is observed. Enumerations are timed until the caller stops ranging.
package hostmetrics

import (
	"errors"
	"iter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
	"github.com/mattsolo1/grove-shellnav/pkg/shellerr"
)

const (
	metricsNamespace = "shellnav"
	hostSubsystem    = "host"
)

// Operation label values.
const (
	OpResolvePath    = "resolve_path"
	OpResolveID      = "resolve_id"
	OpResolveSpecial = "resolve_special"
	OpEnumerate      = "enumerate"
	OpListSpecials   = "list_specials"
	OpDescribe       = "describe"
)

const (
	statusOK       = "ok"
	statusNotFound = "not_found"
	statusError    = "error"
)

// Metrics holds the collectors shared by instrumented hosts.
type Metrics struct {
	// CallsTotal counts host calls. Labels: op, status (ok, not_found, error).
	CallsTotal *prometheus.CounterVec

	// CallDurationSeconds observes host call latency. Labels: op.
	CallDurationSeconds *prometheus.HistogramVec

	// ChildrenTotal counts children yielded by enumerations.
	ChildrenTotal prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: hostSubsystem,
				Name:      "calls_total",
				Help:      "Total namespace host calls by operation and status",
			},
			[]string{"op", "status"},
		),
		CallDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: hostSubsystem,
				Name:      "call_duration_seconds",
				Help:      "Namespace host call latency in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"op"},
		),
		ChildrenTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: hostSubsystem,
				Name:      "children_total",
				Help:      "Total children yielded by enumerations",
			},
		),
	}
	for _, c := range []prometheus.Collector{m.CallsTotal, m.CallDurationSeconds, m.ChildrenTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Host wraps another host and records metrics for each call.
type Host struct {
	next    host.Host
	metrics *Metrics
}

// describingHost is returned by Wrap when the wrapped host is a Describer,
// so the capability survives instrumentation.
type describingHost struct {
	*Host
	d host.Describer
}

var (
	_ host.Host      = (*Host)(nil)
	_ host.Describer = describingHost{}
)

// Wrap instruments next with m. The result implements host.Describer exactly
// when next does.
func Wrap(next host.Host, m *Metrics) host.Host {
	h := &Host{next: next, metrics: m}
	if d, ok := next.(host.Describer); ok {
		return describingHost{Host: h, d: d}
	}
	return h
}

// Unwrap returns the instrumented host.
func (h *Host) Unwrap() host.Host {
	return h.next
}

func (h *Host) observe(op string, start time.Time, err error) {
	h.metrics.CallDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	h.metrics.CallsTotal.WithLabelValues(op, status(err)).Inc()
}

func status(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, shellerr.ErrNotFound):
		return statusNotFound
	default:
		return statusError
	}
}

// ResolveIdentifierForPath implements host.Host.
func (h *Host) ResolveIdentifierForPath(path string) (idlist.IDList, error) {
	start := time.Now()
	id, err := h.next.ResolveIdentifierForPath(path)
	h.observe(OpResolvePath, start, err)
	return id, err
}

// ResolvePathForIdentifier implements host.Host.
func (h *Host) ResolvePathForIdentifier(id idlist.IDList) (string, error) {
	start := time.Now()
	path, err := h.next.ResolvePathForIdentifier(id)
	h.observe(OpResolveID, start, err)
	return path, err
}

// ResolveSpecialLocation implements host.Host.
func (h *Host) ResolveSpecialLocation(ref string) (idlist.IDList, error) {
	start := time.Now()
	id, err := h.next.ResolveSpecialLocation(ref)
	h.observe(OpResolveSpecial, start, err)
	return id, err
}

// EnumerateChildren implements host.Host. The call is recorded once the
// caller stops ranging; the outcome is that of the last pair yielded.
func (h *Host) EnumerateChildren(id idlist.IDList) iter.Seq2[host.Child, error] {
	return func(yield func(host.Child, error) bool) {
		start := time.Now()
		var last error
		defer func() {
			h.observe(OpEnumerate, start, last)
		}()
		for c, err := range h.next.EnumerateChildren(id) {
			last = err
			if err == nil {
				h.metrics.ChildrenTotal.Inc()
			}
			if !yield(c, err) {
				return
			}
		}
	}
}

// ListAllSpecialLocations implements host.Host.
func (h *Host) ListAllSpecialLocations() ([]host.SpecialLocation, error) {
	start := time.Now()
	specials, err := h.next.ListAllSpecialLocations()
	h.observe(OpListSpecials, start, err)
	return specials, err
}

// Describe implements host.Describer.
func (h describingHost) Describe(id idlist.IDList) (host.Child, error) {
	start := time.Now()
	c, err := h.d.Describe(id)
	h.observe(OpDescribe, start, err)
	return c, err
}
