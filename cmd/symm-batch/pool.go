package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/TuftsBCB/structure"

	"github.com/TuftsBCB/symmetry/cmd/util"
	"github.com/TuftsBCB/symmetry/symm"
)

type job struct {
	path, chain string
}

type result struct {
	job
	length int
	symm   *symm.Result
	err    error
}

type pool struct {
	wg      *sync.WaitGroup
	jobs    chan job
	results chan result
}

func newSymmWorkers(conf symm.Config, timeout time.Duration, numWorkers int) pool {
	jobs := make(chan job, numWorkers*2)
	results := make(chan result, numWorkers*2)
	wg := &sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			for j := range jobs {
				results <- analyze(conf, timeout, j)
			}
			wg.Done()
		}()
	}
	return pool{wg, jobs, results}
}

func (p pool) done() {
	close(p.jobs)
	p.wg.Wait() // wait for workers to finish sending results
	close(p.results)
}

func (p pool) enqueue(j job) {
	p.jobs <- j
}

// analyze reads one chain and analyzes it.
func analyze(conf symm.Config, timeout time.Duration, j job) result {
	r := result{job: j}
	entry, err := util.PDBRead(j.path)
	if err != nil {
		r.err = err
		return r
	}
	ca, err := util.ChainCoords(entry, j.chain)
	if err != nil {
		r.err = err
		return r
	}
	r.length = len(ca)
	r.symm, r.err = analyzeCoords(conf.Analyze, timeout, ca)
	return r
}

// analyzeCoords runs fn on ca. A panic in fn becomes an error. A run going
// past timeout is abandoned; it keeps its goroutine until it finishes, but
// its result is dropped.
func analyzeCoords(
	fn func([]structure.Coords) (*symm.Result, error),
	timeout time.Duration,
	ca []structure.Coords,
) (*symm.Result, error) {
	type outcome struct {
		res *symm.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		var o outcome
		defer func() {
			if p := recover(); p != nil {
				o = outcome{nil, fmt.Errorf("analysis failed: %v", p)}
			}
			done <- o
		}()
		o.res, o.err = fn(ca)
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		expired = time.After(timeout)
	}
	select {
	case o := <-done:
		return o.res, o.err
	case <-expired:
		return nil, fmt.Errorf("timed out after %s", timeout)
	}
}
