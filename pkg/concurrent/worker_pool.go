package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait. blocks until every worker is done, then closes the results channel
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

// Close. no more jobs
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	pos int
	val T
}

// OrderedMap. runs jobFunc over jobs on numWorkers goroutines, result i belongs to jobs[i]
func OrderedMap[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	results := make([]G, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	wp := NewWorkerPool[indexed[T], indexed[G]](numWorkers, len(jobs))
	for i, job := range jobs {
		wp.AddJob(indexed[T]{pos: i, val: job})
	}
	wp.Close()

	wp.Start(func(job indexed[T]) indexed[G] {
		return indexed[G]{pos: job.pos, val: jobFunc(job.val)}
	})
	wp.Wait()

	for res := range wp.CollectResults() {
		results[res.pos] = res.val
	}
	return results
}
