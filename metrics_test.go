package main

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordObservation(t *testing.T) {
	t.Parallel()

	m, reg := NewMetricsForTesting()

	obs, err := Observe("KJFK 181751Z 31012KT 10SM FEW050 SCT250 14/M02 A3012", DefaultThresholds())
	require.NoError(t, err)
	m.RecordObservation("KJFK", obs)

	assert.Equal(t, float64(VFR), testutil.ToFloat64(m.FlightCategory.WithLabelValues("KJFK")))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.TemperatureCelsius.WithLabelValues("KJFK")))
	assert.Equal(t, -2.0, testutil.ToFloat64(m.DewpointCelsius.WithLabelValues("KJFK")))
	assert.Equal(t, 1020.0, testutil.ToFloat64(m.PressureHectopascals.WithLabelValues("KJFK")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.VisibilityMiles.WithLabelValues("KJFK")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.WindSpeedKnots.WithLabelValues("KJFK")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.CeilingFeet))

	// Fields missing from the next report are dropped, not left stale
	obs, err = Observe("KJFK 181851Z 00000KT 1/2SM FG OVC002", DefaultThresholds())
	require.NoError(t, err)
	m.RecordObservation("KJFK", obs)

	assert.Equal(t, float64(LIFR), testutil.ToFloat64(m.FlightCategory.WithLabelValues("KJFK")))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.CeilingFeet.WithLabelValues("KJFK")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.WindSpeedKnots.WithLabelValues("KJFK")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.TemperatureCelsius))
	assert.Equal(t, 0, testutil.CollectAndCount(m.PressureHectopascals))

	expected := `
# HELP flightrules_flight_category Flight category ordinal: 0=VFR, 1=MVFR, 2=IFR, 3=LIFR.
# TYPE flightrules_flight_category gauge
flightrules_flight_category{airport="KJFK"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "flightrules_flight_category"))
}

func TestMetrics_perAirport(t *testing.T) {
	t.Parallel()

	m, _ := NewMetricsForTesting()
	for airport, raw := range map[string]string{
		"KJFK": "KJFK 291851Z 27015G25KT 3SM RA BKN008 OVC015 12/08 Q1013",
		"EGLL": "EGLL 181750Z 22012KT CAVOK 11/06 Q1018 NOSIG",
	} {
		obs, err := Observe(raw, DefaultThresholds())
		require.NoError(t, err)
		m.RecordObservation(airport, obs)
	}

	assert.Equal(t, 2, testutil.CollectAndCount(m.FlightCategory))
	assert.Equal(t, float64(IFR), testutil.ToFloat64(m.FlightCategory.WithLabelValues("KJFK")))
	assert.Equal(t, float64(UnlimitedCeilingFeet), testutil.ToFloat64(m.CeilingFeet.WithLabelValues("EGLL")))
}
