package lightning

import "sync"

// Job is one strip of partition groups for a single gate application.
type Job struct {
	Lo   int
	Hi   int
	Fn   func(lo, hi int)
	done *sync.WaitGroup
}

func (j Job) run() {
	defer j.done.Done()
	j.Fn(j.Lo, j.Hi)
}
