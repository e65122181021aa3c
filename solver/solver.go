// Package solver enumerates every word in a wordindex.WordIndex that
// satisfies a constraint.Set, streaming candidates to the caller in the
// index's deterministic tree order.
package solver

import (
	"context"
	"iter"

	"github.com/bodul/sbs/constraint"
	"github.com/bodul/sbs/wordindex"
)

// Solve returns a lazy, finite, non-restartable sequence of candidate
// words: every word in idx that uses only symbols from cs's available set
// (no symbol more than cs's repeat cap), contains every symbol of cs's
// required set at least once, and whose length falls within
// [cs.MinLength(), cs.MaxLength()]. Each word is a freshly allocated
// string. Ranging over the returned sequence drives a depth-first descent
// of idx guided by per-path usage counters and a required-remaining mask;
// calling Solve again produces an independent traversal with its own
// state — the returned sequence itself must be ranged over at most once.
//
// ctx is checked between tree-node visits; if it is done, the sequence
// ends without emitting further candidates. The solver performs no I/O and
// never blocks.
func Solve(ctx context.Context, idx *wordindex.WordIndex, cs *constraint.Set) iter.Seq[string] {
	return func(yield func(string) bool) {
		a := cs.Alphabet()
		usage := make([]int, a.Size())
		requiredRemaining := cs.RequiredMask()
		availableMask := cs.AvailableMask()
		repeatCap := cs.RepeatCap()
		minLength := cs.MinLength()
		maxLength, hasMax := cs.MaxLength()

		stop := false

		var visit wordindex.WalkFunc
		visit = func(path []rune, terminal bool, children []rune, descend func(rune)) {
			if stop {
				return
			}
			select {
			case <-ctx.Done():
				stop = true
				return
			default:
			}

			depth := len(path)
			if terminal && depth > 0 && depth >= minLength && requiredRemaining.IsZero() {
				if !yield(string(path)) {
					stop = true
					return
				}
			}

			// Length prune: the cap is reached on this path, so no child
			// could produce a terminal of admissible length.
			if hasMax && depth+1 > maxLength {
				return
			}

			for _, r := range children {
				if stop {
					return
				}

				symbolIndex, ok := a.Index(r)
				if !ok {
					continue
				}
				bit, _ := a.MaskOf(r)

				if !availableMask.Has(bit) { // alphabet prune
					continue
				}
				if usage[symbolIndex]+1 > repeatCap { // repeat prune
					continue
				}

				usage[symbolIndex]++
				clearedRequired := requiredRemaining.Has(bit)
				if clearedRequired {
					requiredRemaining = requiredRemaining.Without(bit)
				}

				descend(r)

				usage[symbolIndex]--
				if clearedRequired {
					requiredRemaining = requiredRemaining.With(bit)
				}
			}
		}

		idx.Walk(visit)
	}
}
