// Package verifier implements the Driver: it iterates every theorem in a
// parsed database, dispatches each to the normal or compressed proof
// verifier depending on its proof's leading token, and reports pass/fail
// per theorem.
//
// Independent theorems' proofs only ever read the (immutable, once-parsed)
// database, so partitioning the proposition list across worker goroutines
// is safe; that fan-out is implemented here with golang.org/x/sync/errgroup,
// bounded by --jobs.
package verifier

import (
	"context"
	"fmt"

	verr "github.com/cwbudde/mmverify/internal/errors"
	"github.com/cwbudde/mmverify/internal/mm"
	"github.com/cwbudde/mmverify/internal/proof"
	"github.com/cwbudde/mmverify/internal/scope"
	"github.com/cwbudde/mmverify/internal/token"
	"golang.org/x/sync/errgroup"
)

// Mode selects how the driver reacts to the first failure: end the results
// there (Strict, see Run), or keep verifying and report everything at the
// end (Accumulate).
type Mode int

const (
	ModeAccumulate Mode = iota
	ModeStrict
)

// Result is the outcome of verifying one theorem.
type Result struct {
	Label string
	Err   error
}

// Options configures a Driver run.
type Options struct {
	Mode Mode
	Jobs int // goroutines to fan verification across; <=1 means sequential

	// Upto, if non-empty, restricts verification to the prefix of
	// propositions up through (and including) this label.
	Upto string
	// Theorem, if non-empty, restricts verification to exactly this label.
	Theorem string
}

// Driver runs proof verification over a parsed database.
type Driver struct {
	db *mm.Database
}

// New returns a Driver over db.
func New(db *mm.Database) *Driver {
	return &Driver{db: db}
}

// selectPropositions applies --upto/--theorem filtering to the database's
// proposition list, preserving declaration order.
func (d *Driver) selectPropositions(opts Options) ([]*mm.Statement, error) {
	all := d.db.Propositions()

	if opts.Theorem != "" {
		for _, s := range all {
			if s.Label == opts.Theorem {
				return []*mm.Statement{s}, nil
			}
		}
		return nil, fmt.Errorf("no such theorem %q", opts.Theorem)
	}

	if opts.Upto != "" {
		for i, s := range all {
			if s.Label == opts.Upto {
				return all[:i+1], nil
			}
		}
		return nil, fmt.Errorf("no such theorem %q", opts.Upto)
	}

	return all, nil
}

// VerifyOne verifies a single Proposition statement's proof, dispatching to
// the compressed or normal verifier based on whether the first proof token
// is "(".
func (d *Driver) VerifyOne(stmt *mm.Statement) error {
	claim, ok := d.db.RuleFor(stmt.Label)
	if !ok {
		return verr.New(verr.UnknownLabel, stmt.Pos, fmt.Sprintf("no rule built for %q", stmt.Label))
	}
	if len(stmt.Proof) == 0 {
		return verr.New(verr.ScopeError, stmt.Pos, fmt.Sprintf("proposition %q has an empty proof", stmt.Label))
	}

	var err error
	if stmt.Proof[0] == "(" {
		_, err = proof.VerifyCompressed(d.db, claim, stmt.Proof)
	} else {
		_, err = proof.VerifyNormal(d.db, claim, stmt.Proof)
	}
	return err
}

// Run verifies every selected theorem and returns one Result per theorem in
// declaration order. Under ModeStrict the results end at the first failing
// theorem: with Jobs<=1 the theorems after it are not attempted, while with
// Jobs>1 every selected theorem is still attempted and the results are cut
// after the first failure once all workers finish. Under ModeAccumulate,
// every selected theorem is attempted and all results are returned.
//
// ctx is checked for cancellation between theorems (and, with Jobs>1,
// before each worker claims its next theorem), so a caller can abandon a
// long run cooperatively.
func (d *Driver) Run(ctx context.Context, opts Options) ([]Result, error) {
	props, err := d.selectPropositions(opts)
	if err != nil {
		return nil, err
	}

	if opts.Jobs <= 1 {
		return d.runSequential(ctx, props, opts.Mode)
	}
	return d.runParallel(ctx, props, opts)
}

func (d *Driver) runSequential(ctx context.Context, props []*mm.Statement, mode Mode) ([]Result, error) {
	results := make([]Result, 0, len(props))
	for _, p := range props {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		err := d.VerifyOne(p)
		results = append(results, Result{Label: p.Label, Err: err})
		if err != nil && mode == ModeStrict {
			return results, nil
		}
	}
	return results, nil
}

// runParallel fans verification out across opts.Jobs goroutines. Results
// are collected in declaration order regardless of completion order, so
// output (and strict-mode "first failure") remains deterministic.
func (d *Driver) runParallel(ctx context.Context, props []*mm.Statement, opts Options) ([]Result, error) {
	results := make([]Result, len(props))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	for i, p := range props {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Label: p.Label, Err: d.VerifyOne(p)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	if opts.Mode == ModeStrict {
		for i, r := range results {
			if r.Err != nil {
				return results[:i+1], nil
			}
		}
	}
	return results, nil
}

// Parse scopes an already-tokenized input into a database. Callers
// typically produce tokens via internal/lexer first.
func Parse(tokens []token.Token) (*mm.Database, error) {
	interner := token.NewInterner()
	return scope.New(interner).Parse(tokens)
}
