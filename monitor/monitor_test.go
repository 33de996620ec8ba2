package monitor

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/wfunc/connect4/board"
)

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor("test")

	m.IncGamesStarted()
	m.IncMovesApplied(board.Player1)
	m.IncMovesApplied(board.Player1)
	m.IncMovesApplied(board.Player2)
	m.IncRejectedMoves()
	m.IncGamesFinished("win")

	metrics := m.Metrics()
	if got := testutil.ToFloat64(metrics.GamesStarted); got != 1 {
		t.Errorf("Expected 1 game started, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.MovesApplied.WithLabelValues(board.Player1.String())); got != 2 {
		t.Errorf("Expected 2 moves for player 1, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.MovesApplied.WithLabelValues(board.Player2.String())); got != 1 {
		t.Errorf("Expected 1 move for player 2, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.RejectedMoves); got != 1 {
		t.Errorf("Expected 1 rejected move, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.GamesFinished.WithLabelValues("win")); got != 1 {
		t.Errorf("Expected 1 win, got %v", got)
	}
}

func TestMonitor_Decisions(t *testing.T) {
	m := NewMonitor("test")
	m.ObserveDecision("computer", 3*time.Millisecond)
	m.ObserveDecision("human", time.Second)

	if n := testutil.CollectAndCount(m.Metrics().DecisionLatency); n != 2 {
		t.Errorf("Expected one histogram per kind, got %d", n)
	}
}

func TestMonitor_Independent(t *testing.T) {
	// Each monitor owns its registry, so two can coexist in one process.
	a := NewMonitor("test")
	b := NewMonitor("test")
	a.IncGamesStarted()
	if got := testutil.ToFloat64(b.Metrics().GamesStarted); got != 0 {
		t.Errorf("Monitors should not share counters, got %v", got)
	}
}

func TestMonitor_Nil(t *testing.T) {
	var m *Monitor
	m.IncGamesStarted()
	m.IncGamesFinished("draw")
	m.IncMovesApplied(board.Player1)
	m.IncRejectedMoves()
	m.ObserveDecision("human", time.Millisecond)
	if m.Metrics() != nil {
		t.Error("A nil monitor has no metrics")
	}
}
