package events

import (
	"errors"
	"testing"
)

func TestDispatchOrderAndFiltering(t *testing.T) {
	dispatcher := NewEventDispatcher(nil)

	var seen []string
	all := NewFuncObserver("all", func(e Event) error {
		seen = append(seen, "all:"+e.Type)
		return nil
	})
	assemblyOnly := NewFuncObserver("assembly", func(e Event) error {
		seen = append(seen, "assembly:"+e.Type)
		return nil
	}, TypeAssemblyStage, TypeAssemblyCompleted)

	dispatcher.Register(all)
	dispatcher.Register(assemblyOnly)

	dispatcher.Dispatch(Event{Type: TypeDeckUpdated})
	dispatcher.Dispatch(Event{Type: TypeAssemblyStage, TypedData: AssemblyStageEvent{Stage: "generating"}})

	want := []string{
		"all:" + TypeDeckUpdated,
		"all:" + TypeAssemblyStage,
		"assembly:" + TypeAssemblyStage,
	}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestDispatchContinuesAfterObserverError(t *testing.T) {
	dispatcher := NewEventDispatcher(nil)

	failing := NewFuncObserver("failing", func(Event) error {
		return errors.New("boom")
	})
	reached := false
	after := NewFuncObserver("after", func(Event) error {
		reached = true
		return nil
	})

	dispatcher.Register(failing)
	dispatcher.Register(after)
	dispatcher.Dispatch(Event{Type: TypeDeckUpdated})

	if !reached {
		t.Error("dispatch stopped at failing observer")
	}
}

func TestUnregister(t *testing.T) {
	dispatcher := NewEventDispatcher(nil)

	calls := 0
	obs := NewFuncObserver("counting", func(Event) error {
		calls++
		return nil
	})

	dispatcher.Register(obs)
	dispatcher.Dispatch(Event{Type: TypeDeckUpdated})
	dispatcher.Unregister(obs)
	dispatcher.Dispatch(Event{Type: TypeDeckUpdated})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
