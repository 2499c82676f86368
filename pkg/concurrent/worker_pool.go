package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

/*
WorkerPool. numWorkers goroutines apply one JobFunc to every job added with AddJob.

usage: Start, AddJob for every job, Close, then Wait in a separate goroutine while draining CollectResults,
or use Map.
*/
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

// Wait blocks until every worker returned, then closes the results channel.
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

// Close tells the workers that no more jobs will be added.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	pos int
	val T
}

// Map applies jobFunc to every job on numWorkers goroutines, the i-th result belongs to jobs[i].
func Map[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[indexed[T], indexed[G]](numWorkers, len(jobs))
	wp.Start(func(job indexed[T]) indexed[G] {
		return indexed[G]{pos: job.pos, val: jobFunc(job.val)}
	})
	for i, job := range jobs {
		wp.AddJob(indexed[T]{pos: i, val: job})
	}
	wp.Close()
	wp.Wait()

	results := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		results[res.pos] = res.val
	}
	return results
}
