// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/logger"
)

type Metrics struct {
	GamesStarted    prometheus.Counter
	GamesFinished   *prometheus.CounterVec
	MovesApplied    *prometheus.CounterVec
	RejectedMoves   prometheus.Counter
	DecisionLatency *prometheus.HistogramVec
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Number of games started",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of games finished, by outcome",
		}, []string{"outcome"}),
		MovesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_applied_total",
			Help:      "Number of discs dropped, by player",
		}, []string{"player"}),
		RejectedMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_moves_total",
			Help:      "Number of unplayable columns entered by humans",
		}),
		DecisionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decision_seconds",
			Help:      "Time a strategy took to pick a column",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"kind"}),
	}

	reg.MustRegister(
		m.GamesStarted,
		m.GamesFinished,
		m.MovesApplied,
		m.RejectedMoves,
		m.DecisionLatency,
	)

	return m
}

// Monitor records game metrics. A nil *Monitor is valid and records nothing.
type Monitor struct {
	metrics   *Metrics
	registry  *prometheus.Registry
	startTime time.Time
	moveCount int64
	mutex     sync.Mutex
}

func NewMonitor(namespace string) *Monitor {
	reg := prometheus.NewRegistry()
	return &Monitor{
		metrics:   NewMetrics(namespace, reg),
		registry:  reg,
		startTime: time.Now(),
	}
}

func (m *Monitor) Metrics() *Metrics {
	if m == nil {
		return nil
	}
	return m.metrics
}

// StartServer serves /metrics and /debug/vars on addr in the background.
func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	// 添加expvar指标
	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	expvar.Publish("moves", expvar.Func(func() interface{} {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		return m.moveCount
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Log.Errorf("Metrics server on %s stopped: %v", addr, err)
		}
	}()
}

func (m *Monitor) IncGamesStarted() {
	if m == nil {
		return
	}
	m.metrics.GamesStarted.Inc()
}

func (m *Monitor) IncGamesFinished(outcome string) {
	if m == nil {
		return
	}
	m.metrics.GamesFinished.WithLabelValues(outcome).Inc()
}

func (m *Monitor) IncMovesApplied(p board.Player) {
	if m == nil {
		return
	}
	m.metrics.MovesApplied.WithLabelValues(p.String()).Inc()
	m.mutex.Lock()
	m.moveCount++
	m.mutex.Unlock()
}

func (m *Monitor) IncRejectedMoves() {
	if m == nil {
		return
	}
	m.metrics.RejectedMoves.Inc()
}

func (m *Monitor) ObserveDecision(kind string, duration time.Duration) {
	if m == nil {
		return
	}
	m.metrics.DecisionLatency.WithLabelValues(kind).Observe(duration.Seconds())
}
