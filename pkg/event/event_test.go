package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rohanwest/pancake/pkg/event"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	defer event.Flush()

	var calls []string
	event.Listen("order.created", func(payload interface{}) {
		calls = append(calls, "first:"+payload.(string))
	})
	event.Listen("order.created", func(payload interface{}) {
		calls = append(calls, "second:"+payload.(string))
	})

	event.Fire("order.created", "o-1")

	if len(calls) != 2 || calls[0] != "first:o-1" || calls[1] != "second:o-1" {
		t.Errorf("unexpected calls: %v", calls)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	defer event.Flush()
	event.Fire("nobody.listens", nil)
}

func TestFireAsyncRunsAllListeners(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		event.Listen("reward.issued", func(interface{}) { wg.Done() })
	}

	event.FireAsync("reward.issued", nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async listeners did not all run")
	}
}

func TestFlushRemovesListeners(t *testing.T) {
	called := false
	event.Listen("user.promoted", func(interface{}) { called = true })
	event.Flush()

	event.Fire("user.promoted", nil)
	if called {
		t.Error("expected no listeners after Flush")
	}
}
