package form

import (
	"sync"
	"testing"
)

func TestObservable_LastNotificationMatchesValue(t *testing.T) {
	for round := 0; round < 20; round++ {
		o := NewObservable(0)

		var (
			mu   sync.Mutex
			last int
			seen int
		)
		o.Subscribe(func(v int) {
			mu.Lock()
			last = v
			seen++
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for i := 1; i <= 50; i++ {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				if v%2 == 0 {
					o.Set(v)
					return
				}
				o.Update(func(int) (int, bool) { return v, true })
			}(i)
		}
		wg.Wait()

		if seen != 50 {
			t.Fatalf("round %d: expected 50 notifications, got %d", round, seen)
		}
		if got := o.Get(); last != got {
			t.Fatalf("round %d: last notification %d, current value %d", round, last, got)
		}
	}
}

func TestObservable_NotificationsFollowStoreOrder(t *testing.T) {
	o := NewObservable(0)
	var order []int
	o.Subscribe(func(v int) { order = append(order, v) })

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.Update(func(current int) (int, bool) { return current + 1, true })
		}()
	}
	wg.Wait()

	for i, v := range order {
		if v != i+1 {
			t.Fatalf("notification %d carried %d", i, v)
		}
	}
	if len(order) != 100 {
		t.Fatalf("expected 100 notifications, got %d", len(order))
	}
}
