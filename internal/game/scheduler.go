package game

import (
	"sync"
	"time"
)

// TimerScheduler runs continuations on time.AfterFunc goroutines while holding L,
// so they serialize with every other call made under the same lock.
type TimerScheduler struct {
	L sync.Locker
}

// After schedules fn to run under L once d has elapsed.
func (s TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.L.Lock()
		defer s.L.Unlock()
		fn()
	})
}
