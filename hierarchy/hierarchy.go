package hierarchy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hierembed/model"
)

var (
	// ErrCycle is returned when the parent-child edges contain a cycle,
	// which makes node heights undefined.
	ErrCycle = errors.New("hierarchy contains a cycle")

	// ErrUnknownClass is returned when a queried label does not appear
	// in the hierarchy.
	ErrUnknownClass = errors.New("unknown class")

	// ErrMalformedLine is returned when a hierarchy file line is not a
	// whitespace-separated parent-child pair.
	ErrMalformedLine = errors.New("malformed hierarchy line")

	// ErrNoClasses is returned when a distance matrix is requested for
	// an empty class list.
	ErrNoClasses = errors.New("no classes selected")

	// ErrNoCommonAncestor is returned when two classes share no
	// ancestor, so no semantic distance between them is defined.
	ErrNoCommonAncestor = errors.New("classes have no common ancestor")
)

// Hierarchy is a class hierarchy given as a set of directed
// parent-child edges. Multiple parents per node are allowed (a DAG),
// cycles are not.
//
// The height of a node is the longest edge-path down to a leaf; leaves
// have height zero. The semantic distance between two classes is the
// minimal height over their common ancestors, normalized by the
// overall hierarchy height, so that distances fall into [0, 1].
type Hierarchy struct {
	children map[string][]string
	parents  map[string][]string
	nodes    []string
	heights  map[string]int
	maxH     int
}

// New builds a hierarchy from parent-child edge pairs. Node heights
// are computed eagerly; a cyclic edge set returns ErrCycle.
func New(edges [][2]string) (*Hierarchy, error) {
	h := &Hierarchy{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		heights:  make(map[string]int),
	}

	seen := make(map[string]struct{})

	add := func(node string) {
		if _, ok := seen[node]; !ok {
			seen[node] = struct{}{}
			h.nodes = append(h.nodes, node)
		}
	}

	for _, e := range edges {
		parent, child := e[0], e[1]
		add(parent)
		add(child)

		h.children[parent] = append(h.children[parent], child)
		h.parents[child] = append(h.parents[child], parent)
	}

	if err := h.computeHeights(); err != nil {
		return nil, err
	}

	return h, nil
}

// FromReader parses parent-child pairs from r, one whitespace-separated
// edge per line. Blank lines and lines starting with '#' are skipped.
func FromReader(r io.Reader) (*Hierarchy, error) {
	var edges [][2]string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 2", ErrMalformedLine, line, len(fields))
		}

		edges = append(edges, [2]string{fields[0], fields[1]})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(edges)
}

// FromFile parses a hierarchy file, see FromReader for the format.
func FromFile(name string) (*Hierarchy, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return FromReader(f)
}

// Nodes returns all node labels in first-seen order.
func (h *Hierarchy) Nodes() []string {
	nodes := make([]string, len(h.nodes))
	copy(nodes, h.nodes)

	return nodes
}

// Roots returns all nodes without a parent, in first-seen order.
func (h *Hierarchy) Roots() []string {
	var roots []string

	for _, node := range h.nodes {
		if len(h.parents[node]) == 0 {
			roots = append(roots, node)
		}
	}

	return roots
}

// Leaves returns all nodes without children, in first-seen order.
// These are the classes embedded by default.
func (h *Hierarchy) Leaves() []string {
	var leaves []string

	for _, node := range h.nodes {
		if len(h.children[node]) == 0 {
			leaves = append(leaves, node)
		}
	}

	return leaves
}

// Children returns the direct children of node.
func (h *Hierarchy) Children(node string) ([]string, error) {
	if !h.contains(node) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, node)
	}

	children := make([]string, len(h.children[node]))
	copy(children, h.children[node])

	return children, nil
}

// Parents returns the direct parents of node.
func (h *Hierarchy) Parents(node string) ([]string, error) {
	if !h.contains(node) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, node)
	}

	parents := make([]string, len(h.parents[node]))
	copy(parents, h.parents[node])

	return parents, nil
}

// Height returns the longest edge-path from node down to a leaf.
func (h *Hierarchy) Height(node string) (int, error) {
	height, ok := h.heights[node]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, node)
	}

	return height, nil
}

// MaxHeight returns the height of the hierarchy, the largest node
// height. An edgeless hierarchy has height zero.
func (h *Hierarchy) MaxHeight() int { return h.maxH }

// LCSHeight returns the height of the lowest common subsumer of a and
// b: the minimal height over their common ancestors, where every node
// counts as its own ancestor. Classes under disjoint roots return
// ErrNoCommonAncestor.
func (h *Hierarchy) LCSHeight(a, b string) (int, error) {
	if !h.contains(a) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, a)
	}

	if !h.contains(b) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, b)
	}

	common := h.ancestors(a)

	lcs := -1

	for node := range h.ancestors(b) {
		if _, ok := common[node]; !ok {
			continue
		}

		if height := h.heights[node]; lcs < 0 || height < lcs {
			lcs = height
		}
	}

	if lcs < 0 {
		return 0, fmt.Errorf("%w: %q and %q", ErrNoCommonAncestor, a, b)
	}

	return lcs, nil
}

// Distances returns the symmetric, zero-diagonal matrix of normalized
// semantic distances LCSHeight(a, b)/MaxHeight() for the given classes,
// in the given order. The embedder consumes this matrix directly.
//
// The pair loop fans out over all CPUs; rows are index-addressed, so
// the result is deterministic.
func (h *Hierarchy) Distances(classes []string) (*model.DistanceMatrix, error) {
	n := len(classes)
	if n == 0 {
		return nil, ErrNoClasses
	}

	for _, class := range classes {
		if !h.contains(class) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
		}
	}

	if h.maxH == 0 {
		return nil, fmt.Errorf("%w: hierarchy has no edges", ErrNoCommonAncestor)
	}

	dm, err := model.NewDistanceMatrix(n)
	if err != nil {
		return nil, err
	}

	scale := float64(h.maxH)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			// Each goroutine owns the cells of row i right of the
			// diagonal plus their mirrors; no two goroutines share a cell.
			for j := i + 1; j < n; j++ {
				lcs, err := h.LCSHeight(classes[i], classes[j])
				if err != nil {
					return err
				}

				dm.Set(i, j, float64(lcs)/scale)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dm, nil
}

// SortClasses returns the labels in the canonical order used for
// default class selection: numeric order when the labels are integer
// identifiers, lexicographic order otherwise.
func SortClasses(labels []string, numericIDs bool) ([]string, error) {
	sorted := make([]string, len(labels))
	copy(sorted, labels)

	if !numericIDs {
		sort.Strings(sorted)

		return sorted, nil
	}

	keys := make(map[string]int64, len(sorted))

	for _, label := range sorted {
		id, err := strconv.ParseInt(label, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("class %q is not a numeric identifier: %w", label, err)
		}

		keys[label] = id
	}

	sort.Slice(sorted, func(i, j int) bool { return keys[sorted[i]] < keys[sorted[j]] })

	return sorted, nil
}

func (h *Hierarchy) contains(node string) bool {
	_, ok := h.heights[node]

	return ok
}

// ancestors returns node plus everything reachable via parent edges.
func (h *Hierarchy) ancestors(node string) map[string]struct{} {
	anc := make(map[string]struct{})

	stack := []string{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := anc[cur]; ok {
			continue
		}

		anc[cur] = struct{}{}
		stack = append(stack, h.parents[cur]...)
	}

	return anc
}

// computeHeights fills h.heights for every node via iterative DFS over
// child edges, detecting cycles with a three-color marking.
func (h *Hierarchy) computeHeights() error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // done
	)

	color := make(map[string]int, len(h.nodes))

	var visit func(node string) (int, error)
	visit = func(node string) (int, error) {
		switch color[node] {
		case gray:
			return 0, fmt.Errorf("%w: at %q", ErrCycle, node)
		case black:
			return h.heights[node], nil
		}

		color[node] = gray

		height := 0

		for _, child := range h.children[node] {
			ch, err := visit(child)
			if err != nil {
				return 0, err
			}

			if ch+1 > height {
				height = ch + 1
			}
		}

		color[node] = black
		h.heights[node] = height

		if height > h.maxH {
			h.maxH = height
		}

		return height, nil
	}

	for _, node := range h.nodes {
		if _, err := visit(node); err != nil {
			return err
		}
	}

	return nil
}
