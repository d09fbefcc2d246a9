package hostmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-shellnav/internal/testfixture"
	"github.com/mattsolo1/grove-shellnav/pkg/factory"
	"github.com/mattsolo1/grove-shellnav/pkg/host"
	"github.com/mattsolo1/grove-shellnav/pkg/host/memhost"
	"github.com/mattsolo1/grove-shellnav/pkg/idlist"
)

// newTestMetrics registers the collectors on a private registry so tests can
// run in parallel without touching the global one.
func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func standardHost(t *testing.T) *memhost.Host {
	t.Helper()
	h, err := memhost.New(testfixture.Load(t))
	require.NoError(t, err)
	return h
}

type plainHost struct {
	host.Host
}

func TestNewMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestCountsCallsByStatus(t *testing.T) {
	m := newTestMetrics(t)
	h := Wrap(standardHost(t), m)

	_, err := h.ResolveIdentifierForPath(`C:\Windows`)
	require.NoError(t, err)
	_, err = h.ResolveIdentifierForPath(`Z:\nowhere`)
	require.Error(t, err)
	_, err = h.ResolveSpecialLocation(testfixture.ThisPCRef)
	require.NoError(t, err)
	_, err = h.ListAllSpecialLocations()
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpResolvePath, statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpResolvePath, statusNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpResolveSpecial, statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpListSpecials, statusOK)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.CallDurationSeconds))
}

func TestEnumerateCountsChildren(t *testing.T) {
	m := newTestMetrics(t)
	h := Wrap(standardHost(t), m)

	n := 0
	for _, err := range h.EnumerateChildren(idlist.Desktop()) {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, float64(n), testutil.ToFloat64(m.ChildrenTotal))

	for range h.EnumerateChildren(idlist.Desktop()) {
		break
	}
	assert.Equal(t, float64(n+1), testutil.ToFloat64(m.ChildrenTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpEnumerate, statusOK)))

	for range h.EnumerateChildren(idlist.New([]byte("missing"))) {
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpEnumerate, statusNotFound)))
}

func TestWrapKeepsDescriberCapability(t *testing.T) {
	m := newTestMetrics(t)

	_, ok := Wrap(standardHost(t), m).(host.Describer)
	assert.True(t, ok)

	_, ok = Wrap(plainHost{standardHost(t)}, m).(host.Describer)
	assert.False(t, ok)
}

func TestFactoryOverInstrumentedHost(t *testing.T) {
	m := newTestMetrics(t)
	f := factory.New(Wrap(standardHost(t), m))

	loc, err := f.Create(`C:\Users\Me\Documents\Reports`)
	require.NoError(t, err)
	assert.Equal(t, "Reports", loc.Name)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpListSpecials, statusOK)))
	assert.Positive(t, testutil.ToFloat64(m.CallsTotal.WithLabelValues(OpDescribe, statusOK)))
}
