package lightning

// Worker executes strips handed out by its Pool until the pool closes.
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run() {
	for {
		select {
		case <-w.pool.ctx.Done():
			return
		case job := <-w.pool.jobs:
			job.run()
		}
	}
}
