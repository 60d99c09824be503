package scheduler

import "time"

//Clock arms one-shot timers, replaced in tests
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

//Timer is a pending one-shot timer
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
