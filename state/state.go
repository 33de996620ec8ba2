package state

import (
	"errors"
	"sync"
)

// 状态机接口
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(fromID, toID string, condition func() bool) error
	AddTerminal(id string)
}

// 状态接口
type State interface {
	OnEnter()
	OnExit()
	// OnUpdate advances the state by one step. Returning an error aborts the game.
	OnUpdate() error
	GetID() string
}

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// 基础状态机实现
//
// A state with a transition table only leaves through the edges listed in it;
// a state without one may go anywhere. AddTerminal gives a state an empty table.
type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // fromState -> toState -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	// 检查是否有转换条件
	if conditions, exists := sm.transitions[currentID]; exists {
		condition, allowed := conditions[newID]
		if !allowed {
			return ErrTransitionNotAllowed
		}
		if condition != nil && !condition() {
			return ErrTransitionNotAllowed
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

// AddTransition allows fromID -> toID. A nil condition always passes.
func (sm *BaseStateMachine) AddTransition(fromID, toID string, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}

	sm.transitions[fromID][toID] = condition
	return nil
}

// AddTerminal marks a state that can never be left.
func (sm *BaseStateMachine) AddTerminal(id string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.transitions[id] = make(map[string]func() bool)
}

// 状态基础结构
type TurnStateBase struct {
	ID  string
	Ctx TurnContext
}

func (s *TurnStateBase) GetID() string {
	return s.ID
}

func (s *TurnStateBase) OnEnter() {
	// 默认实现
}

func (s *TurnStateBase) OnExit() {
	// 默认实现
}

func (s *TurnStateBase) OnUpdate() error {
	// 默认实现
	return nil
}
