package scenario

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Request is one synthetic call against the shop.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Spec describes a batch of synthetic traffic.
type Spec struct {
	Name        string
	Count       int
	Concurrency int
	// Pace limits how fast requests start; nil means unpaced.
	Pace *rate.Limiter
	// Next produces the request for iteration i.
	Next func(i int) Request
}

// Runner drives scenario traffic against the shop. Failures of individual
// requests are expected output of the show and never fail the scenario.
type Runner struct {
	client *ShopClient
	logger *zap.SugaredLogger
}

func NewRunner(client *ShopClient, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		client: client,
		logger: logger,
	}
}

// Fire issues spec.Count requests and returns how many were started. It
// blocks until all of them finished or the context was cancelled.
func (r *Runner) Fire(ctx context.Context, spec Spec) int {
	concurrency := spec.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	fired := 0
	for i := 0; i < spec.Count; i++ {
		if ctx.Err() != nil {
			break
		}
		if spec.Pace != nil {
			if err := spec.Pace.Wait(ctx); err != nil {
				break
			}
		}

		req := spec.Next(i)
		fired++

		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var err error
			if req.Method == http.MethodPost {
				err = r.client.Post(ctx, req.Path, req.Body)
			} else {
				err = r.client.Get(ctx, req.Path)
			}
			if err != nil {
				r.logger.Debugw("scenario request failed",
					"scenario", spec.Name,
					"path", req.Path,
					"error", err,
				)
			}
		}(req)
	}

	wg.Wait()
	return fired
}
