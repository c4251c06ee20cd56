package lifecycle

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
	stops    int
}

func (c *fakeComponent) Start(ctx context.Context) error {
	_ = ctx
	if c.events != nil {
		*c.events = append(*c.events, "start:"+c.name)
	}
	return c.startErr
}

func (c *fakeComponent) Stop(ctx context.Context) error {
	_ = ctx
	c.stops++
	if c.events != nil {
		*c.events = append(*c.events, "stop:"+c.name)
	}
	return c.stopErr
}

func TestRuntimeStopsInReverseOrder(t *testing.T) {
	t.Parallel()

	events := make([]string, 0, 6)
	store := &fakeComponent{name: "store", events: &events}
	metrics := &fakeComponent{name: "metrics", events: &events}

	runtime := NewRuntime(store)
	runtime.Register(metrics)
	runtime.Register(nil)

	if err := runtime.Start(context.Background()); err != nil {
		t.Fatalf("start runtime: %v", err)
	}
	if err := runtime.Stop(context.Background()); err != nil {
		t.Fatalf("stop runtime: %v", err)
	}

	expected := []string{"start:store", "start:metrics", "stop:metrics", "stop:store"}
	if !reflect.DeepEqual(events, expected) {
		t.Fatalf("unexpected order: got %v want %v", events, expected)
	}
}

func TestRuntimeStartFailureRollsBack(t *testing.T) {
	t.Parallel()

	events := make([]string, 0, 4)
	startErr := errors.New("boom")
	store := &fakeComponent{name: "store", events: &events}
	metrics := &fakeComponent{name: "metrics", events: &events, startErr: startErr}
	late := &fakeComponent{name: "late", events: &events}

	runtime := NewRuntime(store, metrics, late)
	err := runtime.Start(context.Background())
	if !errors.Is(err, startErr) {
		t.Fatalf("expected wrapped start error, got %v", err)
	}

	if store.stops != 1 {
		t.Fatalf("started component should be stopped once, got %d", store.stops)
	}
	if metrics.stops != 0 || late.stops != 0 {
		t.Fatalf("unstarted components must not be stopped: metrics=%d late=%d", metrics.stops, late.stops)
	}
}

func TestRuntimeStopJoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")
	runtime := NewRuntime(
		&fakeComponent{name: "a", stopErr: errA},
		&fakeComponent{name: "b", stopErr: errB},
	)
	if err := runtime.Start(context.Background()); err != nil {
		t.Fatalf("start runtime: %v", err)
	}

	err := runtime.Stop(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both stop errors joined, got %v", err)
	}
}
