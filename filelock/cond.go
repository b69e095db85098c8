package filelock

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errUnlockWithoutLock = errors.New("unlock called with no matching lock held")

// waitOnCond blocks on cond.Wait (the caller must hold cond.L) until
// either another goroutine signals it, ctx is cancelled, or deadline
// passes. cond.Wait itself has no cancellation hook, so a watcher
// goroutine broadcasts on cond to unblock it when ctx or the deadline
// fires. Because a Broadcast is a no-op if nobody is inside Wait yet, the
// watcher keeps re-broadcasting on a short tick after it first fires
// rather than broadcasting once, so a wakeup that lands before the
// caller has actually entered Wait is never silently lost.
func waitOnCond(cond *sync.Cond, ctx context.Context, deadline time.Time, hasDeadline bool) {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		var timer *time.Timer
		if hasDeadline {
			d := time.Until(deadline)
			if d < 0 {
				d = 0
			}
			timer = time.NewTimer(d)
			defer timer.Stop()
		}

		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
		case <-timerC:
		case <-stop:
			return
		}

		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			cond.Broadcast()
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()

	cond.Wait()

	close(stop)
	<-done
}
