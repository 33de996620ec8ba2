package broadcast

import (
	"errors"
	"testing"

	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/rules"
)

// MockObserver is a test double for the Observer interface.
type MockObserver struct {
	Frames []Frame
	Err    error
}

func (m *MockObserver) Observe(frame Frame) error {
	m.Frames = append(m.Frames, frame)
	return m.Err
}

func TestFanOut_DeliversToAll(t *testing.T) {
	a := &MockObserver{}
	b := &MockObserver{}
	fan := NewFanOut(a)
	fan.Add(b)

	if fan.Len() != 2 {
		t.Fatalf("Expected 2 observers, got %d", fan.Len())
	}

	frame := Frame{GameID: "g1", Board: board.NewDefault().Snapshot(), Outcome: rules.Ongoing(), ToMove: board.Player1, LastColumn: -1}
	if err := fan.Broadcast(frame); err != nil {
		t.Fatalf("Broadcast should not fail, got: %v", err)
	}
	for i, o := range []*MockObserver{a, b} {
		if len(o.Frames) != 1 || o.Frames[0].GameID != "g1" {
			t.Errorf("Observer %d did not receive the frame: %+v", i, o.Frames)
		}
	}
}

func TestFanOut_ContinuesAfterError(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	a := &MockObserver{Err: errA}
	b := &MockObserver{}
	c := &MockObserver{Err: errC}
	fan := NewFanOut(a, b, c)

	err := fan.Broadcast(Frame{})
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Errorf("Expected both failures to be reported, got: %v", err)
	}
	if len(b.Frames) != 1 {
		t.Error("A failing observer should not stop delivery to the next one")
	}
}

func TestObserverFunc(t *testing.T) {
	var got Frame
	fan := NewFanOut(ObserverFunc(func(f Frame) error {
		got = f
		return nil
	}))
	fan.Broadcast(Frame{LastColumn: 5})
	if got.LastColumn != 5 {
		t.Errorf("Expected the function to see the frame, got %+v", got)
	}
}
