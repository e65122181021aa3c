// Package wordindex persists a bulk word list as a prefix tree, hiding
// alphabet and case-folding concerns from callers. It supports exact-match
// queries and a prune-capable depth-first walk that the solver package
// drives to enumerate constrained candidates.
package wordindex

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/bodul/sbs/alphabet"
)

// node is one edge-target in the tree. children is a dense, alphabet-index
// keyed array: children[i] is the child reached by the symbol at alphabet
// index i, or nil if no word passes through it. A fixed-size array gives
// the best cache behavior for the bounded alphabets this package indexes
// (26 symbols default, 52 case-sensitive).
type node struct {
	children []*node
	terminal bool
}

func newNode(size int) *node {
	return &node{children: make([]*node, size)}
}

// WordIndex is a rooted prefix tree over a bulk word list, built once and
// read-only thereafter. The zero value is not usable; construct with
// Build.
type WordIndex struct {
	root  *node
	alpha alphabet.Alphabet
}

// Build consumes a line-oriented UTF-8 source and returns a read-only
// WordIndex. For each line: trailing line terminators are stripped, blank
// lines are skipped, case is normalized per caseSensitive, and any line
// containing a symbol outside the active alphabet is discarded. Inserting
// the same word twice leaves the tree unchanged. A malformed UTF-8 line or
// a read failure aborts the build and returns a *BuildError carrying the
// byte offset at which the failure was detected.
func Build(r io.Reader, caseSensitive bool) (*WordIndex, error) {
	a := alphabet.New(caseSensitive)
	idx := &WordIndex{root: newNode(a.Size()), alpha: a}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var offset int64
	for scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &BuildError{Offset: offset, Err: ErrMalformedUTF8}
		}
		offset += int64(len(line)) + 1

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		word, ok := idx.normalize(line)
		if !ok {
			continue
		}
		idx.insert(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, &BuildError{Offset: offset, Err: err}
	}
	return idx, nil
}

// BuildFromFile opens path and builds a WordIndex from its contents, per
// the same rules as Build. This is the entry point cmd/sbsd uses at
// startup against the file named by its dictionary-path configuration.
func BuildFromFile(path string, caseSensitive bool) (*WordIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &BuildError{Err: err}
	}
	defer f.Close()
	return Build(f, caseSensitive)
}

// normalize folds every rune of line per the index's case mode, rejecting
// the whole line if any rune falls outside the active alphabet.
func (idx *WordIndex) normalize(line string) ([]rune, bool) {
	runes := make([]rune, 0, len(line))
	for _, r := range line {
		folded, ok := idx.alpha.Normalize(r)
		if !ok {
			return nil, false
		}
		runes = append(runes, folded)
	}
	if len(runes) == 0 {
		return nil, false
	}
	return runes, true
}

func (idx *WordIndex) insert(word []rune) {
	n := idx.root
	for _, r := range word {
		i, ok := idx.alpha.Index(r)
		if !ok {
			return
		}
		child := n.children[i]
		if child == nil {
			child = newNode(len(n.children))
			n.children[i] = child
		}
		n = child
	}
	n.terminal = true
}

// Contains reports whether word, after the same case normalization applied
// at build time, is present in the index.
func (idx *WordIndex) Contains(word string) bool {
	runes, ok := idx.normalize(word)
	if !ok {
		return false
	}
	n := idx.root
	for _, r := range runes {
		i, ok := idx.alpha.Index(r)
		if !ok {
			return false
		}
		n = n.children[i]
		if n == nil {
			return false
		}
	}
	return n.terminal
}

// Alphabet returns the alphabet this index was built with.
func (idx *WordIndex) Alphabet() alphabet.Alphabet {
	return idx.alpha
}

// WalkFunc is invoked once per visited node. path is the sequence of
// symbols from the root to this node — valid only for the duration of the
// call; a caller that needs to retain it must copy it. terminal reports
// whether path itself is an inserted word. children lists, in ascending
// alphabet-index order, every symbol for which this node has a non-nil
// child. Calling descend(r) for some r in children recurses into that
// child; not calling it prunes the subtree rooted there. children may be
// visited in any order or skipped entirely by the caller.
type WalkFunc func(path []rune, terminal bool, children []rune, descend func(rune))

// Walk performs a depth-first, child-order traversal of the index rooted
// at the empty path, invoking visit at every node including the root. This
// is the solver package's sole entry point into the tree; solver supplies
// the pruning decisions by choosing which children to descend into.
func (idx *WordIndex) Walk(visit WalkFunc) {
	idx.walk(idx.root, make([]rune, 0, 32), visit)
}

func (idx *WordIndex) walk(n *node, path []rune, visit WalkFunc) {
	children := make([]rune, 0, len(n.children))
	for i, c := range n.children {
		if c != nil {
			children = append(children, idx.alpha.Symbol(i))
		}
	}

	descend := func(r rune) {
		i, ok := idx.alpha.Index(r)
		if !ok {
			return
		}
		child := n.children[i]
		if child == nil {
			return
		}
		idx.walk(child, append(path, r), visit)
	}

	visit(path, n.terminal, children, descend)
}
