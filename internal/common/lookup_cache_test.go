package common

import (
	"errors"
	"testing"

	"flight-ops/dispatch/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCache_GetOrLoad(t *testing.T) {
	m := metrics.NewMetricsRegistry()
	lc := NewLookupCache("airport", 60, 120, m)
	loads := 0
	loader := func() (interface{}, error) {
		loads++
		return "Heathrow", nil
	}

	v, err := lc.GetOrLoad("LHR", loader)
	require.NoError(t, err)
	assert.Equal(t, "Heathrow", v)

	v, err = lc.GetOrLoad("LHR", loader)
	require.NoError(t, err)
	assert.Equal(t, "Heathrow", v)
	assert.Equal(t, 1, loads)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("airport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("airport")))
}

func TestLookupCache_NilAndErrorsNotCached(t *testing.T) {
	lc := NewLookupCache("airport", 60, 120, nil)

	v, err := lc.GetOrLoad("ZZZ", func() (interface{}, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, v)
	_, found := lc.Get("ZZZ")
	assert.False(t, found)

	_, err = lc.GetOrLoad("ERR", func() (interface{}, error) { return nil, errors.New("db down") })
	assert.Error(t, err)
	_, found = lc.Get("ERR")
	assert.False(t, found)
}

func TestLookupCache_Delete(t *testing.T) {
	lc := NewLookupCache("airport", 60, 120, nil)
	lc.Set("LHR", 1)
	lc.Delete("LHR")
	_, found := lc.Get("LHR")
	assert.False(t, found)
}
