package metrics

import (
	"net/http"
	"strconv"

	"incomfort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "incomfort"

// Exporter mirrors every observed heater state into prometheus gauges.
type Exporter struct {
	registry *prometheus.Registry

	pressure    *prometheus.GaugeVec
	temperature *prometheus.GaugeVec
	display     *prometheus.GaugeVec
	flag        *prometheus.GaugeVec
	lastUpdate  *prometheus.GaugeVec
	errors      *prometheus.CounterVec
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		pressure: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pressure_bar",
			Help:      "Central heating water pressure (bar).",
		}, []string{"heater"}),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_celsius",
			Help:      "Temperatures reported by the heater (°C).",
		}, []string{"heater", "sensor"}),
		display: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "display_code",
			Help:      "1 for the heater's current display state, 0 otherwise.",
		}, []string{"heater", "state"}),
		flag: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flag",
			Help:      "Status flags decoded from the IO byte.",
		}, []string{"heater", "flag"}),
		lastUpdate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_update_timestamp_seconds",
			Help:      "Unix time of the last successful poll.",
		}, []string{"heater"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Background gateway and cache failures.",
		}, []string{"op"}),
	}
	e.registry.MustRegister(
		e.pressure, e.temperature, e.display, e.flag, e.lastUpdate, e.errors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return e
}

// Observe implements service.Observer.
func (e *Exporter) Observe(st incomfort.HeaterState) {
	h := strconv.Itoa(st.Heater)

	e.pressure.WithLabelValues(h).Set(st.PressureBar)

	e.temperature.WithLabelValues(h, "heater").Set(st.HeaterTempC)
	e.temperature.WithLabelValues(h, "tap").Set(st.TapTempC)
	e.temperature.WithLabelValues(h, "room").Set(st.RoomTempC)
	e.temperature.WithLabelValues(h, "setpoint").Set(st.SetpointC)
	e.temperature.WithLabelValues(h, "setpoint_override").Set(st.SetpointOverrideC)

	for _, ds := range append(incomfort.DisplayStates(), incomfort.Unknown) {
		v := 0.0
		if ds == st.Display {
			v = 1
		}
		e.display.WithLabelValues(h, ds.String()).Set(v)
	}

	e.flag.WithLabelValues(h, "burning").Set(boolGauge(st.Burning))
	e.flag.WithLabelValues(h, "pumping").Set(boolGauge(st.Pumping))
	e.flag.WithLabelValues(h, "tapping").Set(boolGauge(st.Tapping))
	e.flag.WithLabelValues(h, "lockout").Set(boolGauge(st.Lockout))

	e.lastUpdate.WithLabelValues(h).Set(float64(st.UpdatedAt.Unix()))
}

// CountError records a background failure under its operation name.
func (e *Exporter) CountError(op string) {
	e.errors.WithLabelValues(op).Inc()
}

// Handler serves the exporter's registry.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{Registry: e.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
