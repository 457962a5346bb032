// Package edifix implements a bidirectional codec and validator between
// UN/EDIFACT UTILMD interchanges and BO4E JSON documents: tokenize splits
// raw bytes into segments, assemble groups them into a tree per a
// MIG-derived grammar, mapping converts the tree to and from BO4E, write
// renders a tree back to byte-exact EDIFACT, and condition evaluates AHB
// application-guide rules against the result.
package edifix

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/mapping"
	"github.com/edifix/edifix/schema"
	"github.com/edifix/edifix/tokenize"
)

// defaultWorkers bounds concurrency when the caller doesn't pick one.
const defaultWorkers = 4

// Job is one interchange queued for ProcessInterchanges: the raw bytes
// plus the message-type-specific grammar and mapping definitions needed
// to assemble and map it. Grammar and the definition sets are normally
// shared across every job of the same message type and PID.
type Job struct {
	Data                   []byte
	Grammar                assemble.Grammar
	MessageDefinitions     []*mapping.Definition
	TransactionDefinitions []*mapping.Definition

	// TransactionGroup names the repeating group carrying one
	// transaction each; defaults to "SG4" when empty, matching
	// mapping.InterchangeDriver.
	TransactionGroup string
}

// Result is one interchange's processing outcome. Exactly one of
// Interchange and Err is set; Diagnostics may be populated alongside
// either, since the assembler can report tolerant-parse diagnostics even
// when mapping ultimately fails.
type Result struct {
	Index       int
	Interchange *mapping.InterchangeResult
	Diagnostics []assemble.Diagnostic
	Err         error
}

// ProcessInterchanges tokenizes, assembles, and maps a batch of
// interchanges concurrently, one independent tokenize.Tokenizer,
// assemble.Assembler, and mapping.Engine per worker goroutine so that no
// state is shared across interchanges. Results are returned in the same
// order as jobs regardless of completion order. workers <= 0 uses
// defaultWorkers.
//
// A per-job failure is recorded on that Result and does not abort the
// batch; ProcessInterchanges itself only returns an error if ctx is
// canceled before every job completes.
func ProcessInterchanges(ctx context.Context, jobs []Job, resolver *schema.Resolver, workers int, opts ...tokenize.Option) ([]Result, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = processOne(ctx, i, job, resolver, opts)
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func processOne(ctx context.Context, index int, job Job, resolver *schema.Resolver, opts []tokenize.Option) Result {
	tok := tokenize.New(opts...)
	asm := assemble.New()
	engine := mapping.NewEngine()

	segs, _, err := tok.TokenizeContext(ctx, job.Data)
	if err != nil {
		return Result{Index: index, Err: fmt.Errorf("interchange %d: tokenize: %w", index, err)}
	}

	tree, diags, err := asm.Assemble(segs, job.Grammar)
	if err != nil {
		return Result{Index: index, Diagnostics: diags, Err: fmt.Errorf("interchange %d: assemble: %w", index, err)}
	}

	driver := &mapping.InterchangeDriver{
		Engine:                 engine,
		MessageDefinitions:     job.MessageDefinitions,
		TransactionDefinitions: job.TransactionDefinitions,
		TransactionGroup:       job.TransactionGroup,
	}
	ir, err := driver.Process(tree, resolver)
	if err != nil {
		return Result{Index: index, Diagnostics: diags, Err: fmt.Errorf("interchange %d: map: %w", index, err)}
	}

	return Result{Index: index, Interchange: ir, Diagnostics: diags}
}
