package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "flightrules"

// Metrics holds the Prometheus collectors updated on every refresh
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: airport, outcome={success,error,empty}
	FetchDuration prometheus.Histogram

	// Latest observation per airport.
	FlightCategory       *prometheus.GaugeVec // 0=VFR .. 3=LIFR
	TemperatureCelsius   *prometheus.GaugeVec
	DewpointCelsius      *prometheus.GaugeVec
	PressureHectopascals *prometheus.GaugeVec
	VisibilityMiles      *prometheus.GaugeVec
	CeilingFeet          *prometheus.GaugeVec
	WindSpeedKnots       *prometheus.GaugeVec
}

func newMetrics() *Metrics {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, []string{"airport"})
	}

	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_requests_total",
			Help:      "METAR fetches by airport and outcome.",
		}, []string{"airport", "outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a METAR fetch including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FlightCategory:       gauge("flight_category", "Flight category ordinal: 0=VFR, 1=MVFR, 2=IFR, 3=LIFR."),
		TemperatureCelsius:   gauge("temperature_celsius", "Reported temperature."),
		DewpointCelsius:      gauge("dewpoint_celsius", "Reported dewpoint."),
		PressureHectopascals: gauge("pressure_hectopascals", "Reported pressure in hPa."),
		VisibilityMiles:      gauge("visibility_statute_miles", "Reported visibility in statute miles."),
		CeilingFeet:          gauge("ceiling_feet", "Lowest broken or overcast layer; 99999 when unlimited."),
		WindSpeedKnots:       gauge("wind_speed_knots", "Reported wind speed; 0 when calm."),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FetchRequests,
		m.FetchDuration,
		m.FlightCategory,
		m.TemperatureCelsius,
		m.DewpointCelsius,
		m.PressureHectopascals,
		m.VisibilityMiles,
		m.CeilingFeet,
		m.WindSpeedKnots,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	return m, reg
}

// RecordObservation sets the per-airport gauges from an observation. Gauges
// for fields missing from the report are removed rather than left stale.
func (m *Metrics) RecordObservation(airport string, obs Observation) {
	r := obs.Report

	m.FlightCategory.WithLabelValues(airport).Set(float64(obs.Category))

	setOrDelete := func(g *prometheus.GaugeVec, ok bool, value float64) {
		if ok {
			g.WithLabelValues(airport).Set(value)
		} else {
			g.DeleteLabelValues(airport)
		}
	}

	setOrDelete(m.TemperatureCelsius, r.Temperature != nil, derefFloat(r.Temperature))
	setOrDelete(m.DewpointCelsius, r.DewPoint != nil, derefFloat(r.DewPoint))

	var hpa float64
	if r.Pressure != nil {
		hpa = float64(r.Pressure.Hectopascals)
	}
	setOrDelete(m.PressureHectopascals, r.Pressure != nil, hpa)

	var miles float64
	hasVis := false
	if r.Visibility != nil {
		miles, hasVis = r.Visibility.Miles()
	}
	setOrDelete(m.VisibilityMiles, hasVis, miles)

	var ceil float64
	if r.Ceiling != nil {
		ceil = float64(r.Ceiling.Feet)
	}
	setOrDelete(m.CeilingFeet, r.Ceiling != nil, ceil)

	var speed float64
	if r.Wind != nil && !r.Wind.Calm {
		speed = float64(r.Wind.Speed)
	}
	setOrDelete(m.WindSpeedKnots, r.Wind != nil, speed)
}

func derefFloat(v *int) float64 {
	if v == nil {
		return 0
	}
	return float64(*v)
}
