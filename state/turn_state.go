package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/logger"
	"github.com/wfunc/connect4/rules"
	"github.com/wfunc/connect4/strategy"
)

const (
	IDInit         = "init"
	IDAwaitingMove = "awaiting_move"
	IDApplying     = "applying"
	IDEvaluating   = "evaluating"
	IDFinished     = "finished"
)

// StrategyViolationError reports a computer strategy that returned a column the
// board refuses. It wraps board.ErrInvalidMove.
type StrategyViolationError struct {
	Player   board.Player
	Strategy string
	Column   int
	Err      error
}

func (e *StrategyViolationError) Error() string {
	return fmt.Sprintf("%s strategy %s returned illegal column %d: %v", e.Player, e.Strategy, e.Column, e.Err)
}

func (e *StrategyViolationError) Unwrap() error { return e.Err }

// InitState flips the coin for the first player.
type InitState struct {
	TurnStateBase
}

func NewInitState(ctx TurnContext) *InitState {
	return &InitState{TurnStateBase: TurnStateBase{ID: IDInit, Ctx: ctx}}
}

func (s *InitState) OnUpdate() error {
	first := s.Ctx.CoinFlip()
	logger.Log.Infof("Game %s starts, %s moves first", s.Ctx.GetID(), first)
	s.Ctx.Monitor().IncGamesStarted()
	s.Ctx.Publish(rules.Ongoing(), first, -1)
	return s.Ctx.ChangeState(NewAwaitingMoveState(s.Ctx, first))
}

// AwaitingMoveState asks the active player's strategy for a column.
type AwaitingMoveState struct {
	TurnStateBase
	Player board.Player
}

func NewAwaitingMoveState(ctx TurnContext, p board.Player) *AwaitingMoveState {
	return &AwaitingMoveState{
		TurnStateBase: TurnStateBase{ID: IDAwaitingMove, Ctx: ctx},
		Player:        p,
	}
}

// OnUpdate keeps asking a human until a legal column comes back. The state does
// not change while it waits; a computer gets exactly one chance.
func (s *AwaitingMoveState) OnUpdate() error {
	strat := s.Ctx.Strategy(s.Player)
	b := s.Ctx.Board()
	for {
		start := time.Now()
		column, err := strat.PickMove(b.Snapshot())
		s.Ctx.Monitor().ObserveDecision(strat.Kind().String(), time.Since(start))
		if err != nil {
			return fmt.Errorf("%s (%s): %w", s.Player, strat, err)
		}

		if b.IsLegalMove(column) {
			return s.Ctx.ChangeState(NewApplyingState(s.Ctx, s.Player, column))
		}

		moveErr := &board.InvalidMoveError{Column: column, Reason: "is not playable"}
		if strat.Kind() != strategy.KindHuman {
			return &StrategyViolationError{Player: s.Player, Strategy: strat.String(), Column: column, Err: moveErr}
		}

		logger.Log.Warnf("Game %s: %s entered unplayable column %d", s.Ctx.GetID(), s.Player, column)
		s.Ctx.Monitor().IncRejectedMoves()
		if r, ok := strat.(strategy.Rejecter); ok {
			r.Reject(column)
		}
	}
}

// ApplyingState drops the disc. Legality was settled in AwaitingMoveState.
type ApplyingState struct {
	TurnStateBase
	Player board.Player
	Column int
}

func NewApplyingState(ctx TurnContext, p board.Player, column int) *ApplyingState {
	return &ApplyingState{
		TurnStateBase: TurnStateBase{ID: IDApplying, Ctx: ctx},
		Player:        p,
		Column:        column,
	}
}

func (s *ApplyingState) OnUpdate() error {
	row, err := s.Ctx.Board().ApplyMove(s.Column, s.Player)
	if err != nil {
		return fmt.Errorf("apply validated move: %w", err)
	}
	logger.Log.Debugf("Game %s: %s played column %d row %d", s.Ctx.GetID(), s.Player, s.Column, row)
	s.Ctx.Monitor().IncMovesApplied(s.Player)
	return s.Ctx.ChangeState(NewEvaluatingState(s.Ctx, s.Player, s.Column))
}

// EvaluatingState checks the move just applied and decides who plays next.
type EvaluatingState struct {
	TurnStateBase
	Player board.Player
	Column int
}

func NewEvaluatingState(ctx TurnContext, p board.Player, column int) *EvaluatingState {
	return &EvaluatingState{
		TurnStateBase: TurnStateBase{ID: IDEvaluating, Ctx: ctx},
		Player:        p,
		Column:        column,
	}
}

func (s *EvaluatingState) OnUpdate() error {
	b := s.Ctx.Board()
	outcome := rules.Ongoing()
	if line, ok := rules.CheckWin(b, s.Column); ok {
		outcome = rules.Won(s.Player, line)
	} else if b.IsFull() {
		outcome = rules.Drawn()
	}

	next := s.Player.Other()
	if outcome.Terminal() {
		next = board.Empty
	}
	s.Ctx.Publish(outcome, next, s.Column)

	if outcome.Terminal() {
		return s.Ctx.ChangeState(NewFinishedState(s.Ctx, outcome))
	}
	return s.Ctx.ChangeState(NewAwaitingMoveState(s.Ctx, next))
}

// ErrGameFinished is returned when a finished game is asked to continue.
var ErrGameFinished = errors.New("game already finished")

// FinishedState is terminal and holds the final outcome.
type FinishedState struct {
	TurnStateBase
	Outcome rules.Outcome
}

func NewFinishedState(ctx TurnContext, outcome rules.Outcome) *FinishedState {
	return &FinishedState{
		TurnStateBase: TurnStateBase{ID: IDFinished, Ctx: ctx},
		Outcome:       outcome,
	}
}

func (s *FinishedState) OnEnter() {
	logger.Log.Infof("Game %s finished: %s", s.Ctx.GetID(), s.Outcome)
	s.Ctx.Monitor().IncGamesFinished(s.Outcome.Status.String())
}

func (s *FinishedState) OnUpdate() error {
	return ErrGameFinished
}

// RegisterTurnTransitions installs the legal edges of the turn machine.
func RegisterTurnTransitions(sm StateMachine) {
	sm.AddTransition(IDInit, IDAwaitingMove, nil)
	sm.AddTransition(IDAwaitingMove, IDApplying, nil)
	sm.AddTransition(IDApplying, IDEvaluating, nil)
	sm.AddTransition(IDEvaluating, IDAwaitingMove, nil)
	sm.AddTransition(IDEvaluating, IDFinished, nil)
	sm.AddTerminal(IDFinished)
}
