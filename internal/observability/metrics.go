package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrupa las métricas del motor de mascotas.
type Collector struct {
	gatherer prometheus.Gatherer

	Population        prometheus.Gauge
	Ticks             prometheus.Counter
	Friendships       prometheus.Counter
	RecoveryDiscarded prometheus.Counter
	Commands          *prometheus.CounterVec
}

// NewCollector registra las métricas; reg nil => registry global.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	population, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pets_population",
		Help: "Current number of pets in the panel.",
	}), "pets_population")
	if err != nil {
		return nil, err
	}
	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pets_ticks_total",
		Help: "Ticks processed (friend-seeking sweep + frame advance + save).",
	}), "pets_ticks_total")
	if err != nil {
		return nil, err
	}
	friendships, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pets_friendships_total",
		Help: "Friendship bonds formed by the friend-seeking sweep.",
	}), "pets_friendships_total")
	if err != nil {
		return nil, err
	}
	discarded, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pets_recovery_discarded_total",
		Help: "Persisted pet entries discarded during session recovery.",
	}), "pets_recovery_discarded_total")
	if err != nil {
		return nil, err
	}

	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pets_commands_total",
		Help: "Commands handled by the panel, labeled by command and outcome.",
	}, []string{"command", "outcome"})
	if err := reg.Register(commands); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector pets_commands_total already registered with incompatible type")
		}
		commands = existing
	}

	return &Collector{
		gatherer:          gatherer,
		Population:        population,
		Ticks:             ticks,
		Friendships:       friendships,
		RecoveryDiscarded: discarded,
		Commands:          commands,
	}, nil
}

// Handler expone /metrics.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (c *Collector) SetPopulation(n int) {
	if c == nil || c.Population == nil {
		return
	}
	c.Population.Set(float64(n))
}

func (c *Collector) IncTick() {
	if c == nil || c.Ticks == nil {
		return
	}
	c.Ticks.Inc()
}

func (c *Collector) AddFriendships(n int) {
	if c == nil || c.Friendships == nil || n <= 0 {
		return
	}
	c.Friendships.Add(float64(n))
}

func (c *Collector) IncRecoveryDiscarded() {
	if c == nil || c.RecoveryDiscarded == nil {
		return
	}
	c.RecoveryDiscarded.Inc()
}

func (c *Collector) ObserveCommand(command, outcome string) {
	if c == nil || c.Commands == nil {
		return
	}
	c.Commands.WithLabelValues(command, outcome).Inc()
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return g, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return c, nil
}
