// Package reactive is a small synchronous dependency graph. Input nodes hold
// values set from outside; output nodes are pure functions of the nodes they
// declare as dependencies. Setting an input recomputes exactly the outputs
// downstream of it, in topological order.
package reactive

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"occustats/internal/errors"
)

// Values is a read-only view of node values passed to compute functions.
// Unset inputs are nil.
type Values map[string]interface{}

// String returns the value of id as a string, or "" when unset or not a string
func (v Values) String(id string) string {
	s, _ := v[id].(string)
	return s
}

// ComputeFunc derives an output value from the current values of the graph
type ComputeFunc func(ctx context.Context, in Values) (interface{}, error)

type nodeKind int

const (
	inputNode nodeKind = iota
	outputNode
)

type node struct {
	id      string
	kind    nodeKind
	deps    []string
	compute ComputeFunc
}

// ComputeError reports which output failed during a recomputation
type ComputeError struct {
	Node string
	Err  error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Node, e.Err)
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

// Graph is an immutable, validated dependency graph. It is safe for concurrent
// use; per-client values live in State.
type Graph struct {
	nodes  map[string]*node
	inputs []string
	order  []string // outputs, topologically sorted
	resets map[string][]string
}

// State holds the current value of every node for one client. A State must
// not be used from several goroutines at once.
type State struct {
	values Values
}

// Value returns the current value of a node
func (s *State) Value(id string) interface{} {
	return s.values[id]
}

// Values returns a copy of every node value
func (s *State) Values() Values {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Update lists what one Set call changed, in the order it happened
type Update struct {
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// Changed reports whether id was reassigned or recomputed
func (u Update) Changed(id string) bool {
	for _, n := range u.Inputs {
		if n == id {
			return true
		}
	}
	for _, n := range u.Outputs {
		if n == id {
			return true
		}
	}
	return false
}

// IsInput reports whether id names an input node
func (g *Graph) IsInput(id string) bool {
	n, ok := g.nodes[id]
	return ok && n.kind == inputNode
}

// NewState returns a state with every input unset and every output computed once.
func (g *Graph) NewState(ctx context.Context) (*State, error) {
	values := make(Values, len(g.nodes))
	for _, id := range g.inputs {
		values[id] = nil
	}
	for _, id := range g.order {
		v, err := g.nodes[id].compute(ctx, values)
		if err != nil {
			return nil, &ComputeError{Node: id, Err: err}
		}
		values[id] = v
	}
	return &State{values: values}, nil
}

// Set assigns value to an input, applies reset rules, then recomputes the
// affected outputs. Nothing is committed to st unless every recomputation succeeds.
func (g *Graph) Set(ctx context.Context, st *State, input string, value interface{}) (Update, error) {
	if !g.IsInput(input) {
		return Update{}, errors.InvalidInput(fmt.Sprintf("unknown input %q", input))
	}

	next := st.Values()
	var update Update
	dirty := make(map[string]bool)

	if reflect.DeepEqual(next[input], value) {
		return update, nil
	}
	next[input] = value
	dirty[input] = true
	update.Inputs = append(update.Inputs, input)

	// resets cascade breadth first; each input is cleared at most once
	queue := []string{input}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, child := range g.resets[parent] {
			if dirty[child] || next[child] == nil {
				continue
			}
			next[child] = nil
			dirty[child] = true
			update.Inputs = append(update.Inputs, child)
			queue = append(queue, child)
		}
	}

	for _, id := range g.order {
		n := g.nodes[id]
		if !anyDirty(n.deps, dirty) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Update{}, err
		}
		v, err := n.compute(ctx, next)
		if err != nil {
			return Update{}, &ComputeError{Node: id, Err: err}
		}
		next[id] = v
		dirty[id] = true
		update.Outputs = append(update.Outputs, id)
	}

	st.values = next
	return update, nil
}

func anyDirty(deps []string, dirty map[string]bool) bool {
	for _, d := range deps {
		if dirty[d] {
			return true
		}
	}
	return false
}

// Builder collects node declarations; Build validates them.
type Builder struct {
	nodes    map[string]*node
	declared []string
	resets   map[string][]string
	errs     []string
}

// NewBuilder returns an empty builder
func NewBuilder() *Builder {
	return &Builder{
		nodes:  make(map[string]*node),
		resets: make(map[string][]string),
	}
}

func (b *Builder) add(n *node) {
	if n.id == "" {
		b.errs = append(b.errs, "empty node id")
		return
	}
	if _, exists := b.nodes[n.id]; exists {
		b.errs = append(b.errs, fmt.Sprintf("duplicate node %q", n.id))
		return
	}
	b.nodes[n.id] = n
	b.declared = append(b.declared, n.id)
}

// Input declares an input node
func (b *Builder) Input(id string) *Builder {
	b.add(&node{id: id, kind: inputNode})
	return b
}

// Output declares an output computed from deps
func (b *Builder) Output(id string, deps []string, fn ComputeFunc) *Builder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Sprintf("output %q has no compute function", id))
		return b
	}
	b.add(&node{id: id, kind: outputNode, deps: append([]string(nil), deps...), compute: fn})
	return b
}

// ResetOnChange clears the child input whenever the parent input changes
func (b *Builder) ResetOnChange(parent, child string) *Builder {
	b.resets[parent] = append(b.resets[parent], child)
	return b
}

// Build validates ids, dependencies and reset rules, and orders the outputs.
func (b *Builder) Build() (*Graph, error) {
	errs := append([]string(nil), b.errs...)

	g := &Graph{
		nodes:  b.nodes,
		resets: make(map[string][]string),
	}

	var outputs []string
	for _, id := range b.declared {
		n := b.nodes[id]
		if n.kind == inputNode {
			g.inputs = append(g.inputs, id)
			continue
		}
		outputs = append(outputs, id)
		if len(n.deps) == 0 {
			errs = append(errs, fmt.Sprintf("output %q has no dependencies", id))
		}
		for _, dep := range n.deps {
			if _, ok := b.nodes[dep]; !ok {
				errs = append(errs, fmt.Sprintf("output %q depends on unknown node %q", id, dep))
			}
		}
	}

	for parent, children := range b.resets {
		for _, child := range children {
			if !isInput(b.nodes, parent) || !isInput(b.nodes, child) {
				errs = append(errs, fmt.Sprintf("reset rule %q -> %q must link two inputs", parent, child))
				continue
			}
			if parent == child {
				errs = append(errs, fmt.Sprintf("reset rule on %q resets itself", parent))
				continue
			}
			g.resets[parent] = append(g.resets[parent], child)
		}
	}

	if len(errs) > 0 {
		return nil, errors.ValidationError("invalid graph: " + strings.Join(errs, "; "))
	}

	order, err := topoSort(b.nodes, outputs)
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

func isInput(nodes map[string]*node, id string) bool {
	n, ok := nodes[id]
	return ok && n.kind == inputNode
}

// topoSort orders outputs so every output follows the outputs it depends on.
// Ties keep declaration order.
func topoSort(nodes map[string]*node, outputs []string) ([]string, error) {
	pending := make(map[string]int, len(outputs))
	for _, id := range outputs {
		for _, dep := range nodes[id].deps {
			if nodes[dep].kind == outputNode {
				pending[id]++
			}
		}
	}

	done := make(map[string]bool, len(outputs))
	order := make([]string, 0, len(outputs))
	for len(order) < len(outputs) {
		progressed := false
		for _, id := range outputs {
			if done[id] || pending[id] > 0 {
				continue
			}
			done[id] = true
			order = append(order, id)
			progressed = true
			for _, other := range outputs {
				if done[other] {
					continue
				}
				for _, dep := range nodes[other].deps {
					if dep == id {
						pending[other]--
					}
				}
			}
		}
		if !progressed {
			var cycle []string
			for _, id := range outputs {
				if !done[id] {
					cycle = append(cycle, id)
				}
			}
			return nil, errors.ValidationError("invalid graph: dependency cycle among " + strings.Join(cycle, ", "))
		}
	}
	return order, nil
}
