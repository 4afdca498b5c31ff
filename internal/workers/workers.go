// SPDX-License-Identifier: Apache-2.0

package workers

// Workers aggregates background workers and starts them in order.
type Workers struct {
	workers []Worker
}

// NewWorkers builds a Workers aggregate over the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
