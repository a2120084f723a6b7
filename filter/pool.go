package filter

// defaultChunkSize is the number of candidates one worker task
// scans. Smaller chunks cost more in dispatch overhead than they win
// in parallelism.
const defaultChunkSize = 500

// maxThreads bounds the worker pool regardless of how many CPUs the
// host reports.
const maxThreads = 32

// pool is a fixed set of goroutines draining a task queue. It is
// sized once at engine construction and lives for the engine's
// lifetime.
type pool struct {
	tasks chan func()
}

func newPool(workers int) *pool {
	p := &pool{tasks: make(chan func(), workers)}
	for i := 0; i < workers; i++ {
		go p.run()
	}
	return p
}

func (p *pool) run() {
	for fn := range p.tasks {
		fn()
	}
}

// submit queues fn for execution. Blocks when all workers are busy
// and the queue is full; the engine's per-pass barrier guarantees the
// queue drains.
func (p *pool) submit(fn func()) {
	p.tasks <- fn
}

func (p *pool) close() {
	close(p.tasks)
}
