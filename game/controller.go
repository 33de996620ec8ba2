// game/controller.go
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/broadcast"
	"github.com/wfunc/connect4/logger"
	"github.com/wfunc/connect4/monitor"
	"github.com/wfunc/connect4/rules"
	"github.com/wfunc/connect4/state"
	"github.com/wfunc/connect4/strategy"
)

// ErrGameFinished is returned by Step once the game is over.
var ErrGameFinished = state.ErrGameFinished

// RandomSource picks the first player. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Settings sizes the board.
type Settings struct {
	Columns int
	Rows    int
}

func DefaultSettings() Settings {
	return Settings{Columns: board.DefaultColumns, Rows: board.DefaultRows}
}

type Option func(*Controller)

// WithRand fixes the coin flip source.
func WithRand(r RandomSource) Option {
	return func(c *Controller) { c.rng = r }
}

func WithObserver(o broadcast.Observer) Option {
	return func(c *Controller) { c.observers.Add(o) }
}

func WithMonitor(m *monitor.Monitor) Option {
	return func(c *Controller) { c.monitor = m }
}

func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// Controller runs one game between two strategies. It owns the only mutable
// board and is the sole caller of ApplyMove.
type Controller struct {
	id           string
	board        *board.Board
	players      [2]strategy.Strategy
	rng          RandomSource
	StateMachine state.StateMachine
	observers    *broadcast.FanOut
	monitor      *monitor.Monitor

	outcome    rules.Outcome
	toMove     board.Player
	lastColumn int
	mutex      sync.RWMutex
}

// NewController creates a game in the init state.
func NewController(settings Settings, p1, p2 strategy.Strategy, opts ...Option) (*Controller, error) {
	if p1 == nil || p2 == nil {
		return nil, fmt.Errorf("both players need a strategy")
	}
	b, err := board.New(settings.Columns, settings.Rows)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		id:         uuid.New().String(),
		board:      b,
		players:    [2]strategy.Strategy{p1, p2},
		observers:  broadcast.NewFanOut(),
		outcome:    rules.Ongoing(),
		lastColumn: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// 初始化状态机，将控制器自身作为上下文传入
	machine := state.NewBaseStateMachine(state.NewInitState(c))
	state.RegisterTurnTransitions(machine)
	c.StateMachine = machine

	return c, nil
}

// --- 实现 state.TurnContext 接口 ---

func (c *Controller) GetID() string {
	return c.id
}

func (c *Controller) Board() *board.Board {
	return c.board
}

func (c *Controller) Strategy(p board.Player) strategy.Strategy {
	if !p.Valid() {
		return nil
	}
	return c.players[p-1]
}

func (c *Controller) CoinFlip() board.Player {
	if c.rng.Intn(2) == 0 {
		return board.Player1
	}
	return board.Player2
}

func (c *Controller) ChangeState(newState state.State) error {
	return c.StateMachine.ChangeState(newState)
}

// Publish stores the latest outcome and notifies observers. A terminal outcome
// is never overwritten.
func (c *Controller) Publish(outcome rules.Outcome, toMove board.Player, lastColumn int) {
	c.mutex.Lock()
	if c.outcome.Terminal() {
		c.mutex.Unlock()
		return
	}
	c.outcome = outcome
	c.toMove = toMove
	c.lastColumn = lastColumn
	c.mutex.Unlock()

	frame := broadcast.Frame{
		GameID:     c.id,
		Board:      c.board.Snapshot(),
		Outcome:    outcome,
		ToMove:     toMove,
		LastColumn: lastColumn,
	}
	if err := c.observers.Broadcast(frame); err != nil {
		logger.Log.Warnf("Game %s: observer failed: %v", c.id, err)
	}
}

func (c *Controller) Monitor() *monitor.Monitor {
	return c.monitor
}

// --- 游戏驱动 ---

// Step runs the current state once. It returns ErrGameFinished, without asking
// any strategy, when the game is already over.
func (c *Controller) Step() error {
	current := c.StateMachine.GetCurrentState()
	if current == nil {
		return fmt.Errorf("game %s has no state", c.id)
	}
	if current.GetID() == state.IDFinished {
		return ErrGameFinished
	}
	return current.OnUpdate()
}

// Run steps until the game finishes or a step fails. The outcome is returned in
// both cases; after a failure it is whatever was last published.
func (c *Controller) Run() (rules.Outcome, error) {
	for !c.Finished() {
		if err := c.Step(); err != nil {
			logger.Log.Errorf("Game %s aborted: %v", c.id, err)
			return c.Outcome(), err
		}
	}
	return c.Outcome(), nil
}

func (c *Controller) Finished() bool {
	current := c.StateMachine.GetCurrentState()
	return current != nil && current.GetID() == state.IDFinished
}

// StateID names the current state of the turn machine.
func (c *Controller) StateID() string {
	return c.StateMachine.GetCurrentState().GetID()
}

func (c *Controller) Outcome() rules.Outcome {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.outcome
}

// ToMove is the player whose turn it is, or Empty before the coin flip and after the end.
func (c *Controller) ToMove() board.Player {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.toMove
}

func (c *Controller) LastColumn() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.lastColumn
}

// Snapshot returns a read-only copy of the board.
func (c *Controller) Snapshot() board.Snapshot {
	return c.board.Snapshot()
}
