package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/retain/internal/logging"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue(logging.NewNop())

	var got []int
	q.Schedule(func() {
		got = append(got, 1)
		q.Schedule(func() { got = append(got, 3) })
	})
	q.Schedule(func() { got = append(got, 2) })

	if n := q.Flush(); n != 3 {
		t.Errorf("Flush() = %d, want 3", n)
	}
	want := []int{1, 2, 3}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestQueueRunOneEmpty(t *testing.T) {
	q := NewQueue(logging.NewNop())
	if q.RunOne() {
		t.Error("RunOne() on empty queue = true, want false")
	}
}

func TestQueueFlushN(t *testing.T) {
	q := NewQueue(logging.NewNop())
	var loop func()
	loop = func() { q.Schedule(loop) }
	q.Schedule(loop)

	if n := q.FlushN(5); n != 5 {
		t.Errorf("FlushN(5) = %d, want 5", n)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueueRecoversPanic(t *testing.T) {
	q := NewQueue(logging.NewNop())
	ran := false
	q.Schedule(func() { panic("boom") })
	q.Schedule(func() { ran = true })

	q.Flush()
	if !ran {
		t.Error("task after panic did not run")
	}
}

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		l.Schedule(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}

	if err := l.Do(ctx, func() {}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 100 {
		t.Fatalf("ran %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestLoopConcurrentSchedule(t *testing.T) {
	l := NewLoop(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	var wg sync.WaitGroup
	count := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Schedule(func() { count++ })
			}
		}()
	}
	wg.Wait()

	if err := l.Do(ctx, func() {}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if count != 400 {
		t.Errorf("count = %d, want 400", count)
	}
}

func TestLoopSurvivesPanic(t *testing.T) {
	l := NewLoop(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Start(ctx)

	l.Schedule(func() { panic("boom") })
	ran := false
	if err := l.Do(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Error("task after panic did not run")
	}
}

func TestLoopClose(t *testing.T) {
	l := NewLoop(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	l.Close()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}

	l.Schedule(func() { t.Error("ran after Close") })
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", l.Pending())
	}
}

func TestLoopContextCancel(t *testing.T) {
	l := NewLoop(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	<-l.Done()
}
