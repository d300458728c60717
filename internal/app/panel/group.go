package panel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/its-ME-007/adk-web-api/internal/domain"
	"github.com/its-ME-007/adk-web-api/internal/observability"
)

// Group fans the user's query out to every worker concurrently and joins
// them all before returning. A member failure is recorded in that member's
// result slot, not propagated to its siblings; only all members failing is
// a group-level error.
type Group struct {
	workers []Worker
	llm     domain.LLMClient
}

func NewGroup(workers []Worker, llm domain.LLMClient) *Group {
	return &Group{
		workers: workers,
		llm:     llm,
	}
}

func (g *Group) Workers() []Worker {
	return g.workers
}

// Run executes every worker against the same user message and returns one
// result per worker, in roster order. It returns only after all workers
// reached a terminal state. The caller commits the results to the context
// store; Run itself writes nothing shared.
func (g *Group) Run(ctx context.Context, userMessage string) ([]domain.Result, error) {
	if len(g.workers) == 0 {
		return nil, fmt.Errorf("no workers configured in group")
	}

	log := observability.LoggerFromContext(ctx)
	log.Info("barrier group started", "workers", len(g.workers))

	results := make([]domain.Result, len(g.workers))
	var failures atomic.Int32

	// Plain errgroup without WithContext: a failing member must not
	// cancel its siblings.
	eg := new(errgroup.Group)

	for i, w := range g.workers {
		eg.Go(func() error {
			start := time.Now()

			reply, err := g.llm.GenerateReply(ctx, buildWorkerPrompt(w.Instruction, userMessage))

			res := domain.Result{
				Key:       w.OutputKey,
				AgentName: w.Name,
				CreatedAt: time.Now(),
			}
			if err != nil {
				log.Error("worker failed", "worker", w.Name, "error", err)
				res.Err = err.Error()
				failures.Add(1)
			} else {
				res.Text = reply
				log.Info("worker finished", "worker", w.Name, "elapsed_ms", time.Since(start).Milliseconds())
			}

			results[i] = res
			return nil
		})
	}

	// The join barrier. Member errors are carried in the result slots, so
	// Wait never returns one.
	_ = eg.Wait()

	if int(failures.Load()) == len(g.workers) {
		log.Error("barrier group failed", "workers", len(g.workers))
		return results, domain.ErrAllWorkersFailed
	}

	log.Info("barrier group joined", "failed", failures.Load())
	return results, nil
}
