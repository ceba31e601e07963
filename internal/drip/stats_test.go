package drip_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/drip"
)

func TestStatsRegister(t *testing.T) {
	// given
	reg := prometheus.NewRegistry()
	sut := drip.NewStats()

	// when
	err := sut.Register(reg)

	// then
	require.NoError(t, err)

	// registering the same collectors twice is tolerated
	require.NoError(t, sut.Register(reg))

	sut.Drips.WithLabelValues("sent").Inc()
	count, err := testutil.GatherAndCount(reg, "drip_pipeline_results_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	sut.Unregister(reg)
	count, err = testutil.GatherAndCount(reg, "drip_pipeline_results_total")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
