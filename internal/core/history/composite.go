package history

import (
	"errors"
	"fmt"
)

// CompositeAction applies a set of child actions as one history entry,
// typically one move per entity of a multi-selection drag.
// Children act on disjoint entities, so their order carries no meaning.
type CompositeAction struct {
	children []Action
}

// NewCompositeAction groups children into a single action. A child that is
// an extension of an earlier one is folded into it, so no two children
// target the same logical edit. Nil children are ignored.
func NewCompositeAction(children ...Action) *CompositeAction {
	c := &CompositeAction{children: make([]Action, 0, len(children))}
	for _, child := range children {
		if child == nil {
			continue
		}
		if c.fold(child) {
			continue
		}
		c.children = append(c.children, child)
	}
	return c
}

// fold merges child into an existing equivalent child, if there is one.
func (c *CompositeAction) fold(child Action) bool {
	for _, existing := range c.children {
		if existing.IsExtensionOf(child) && existing.Extend(child) == nil {
			return true
		}
	}
	return false
}

// Children returns a copy of the child list.
func (c *CompositeAction) Children() []Action {
	out := make([]Action, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children.
func (c *CompositeAction) Len() int {
	return len(c.children)
}

// Undo undoes every child. A failing child does not stop the others; all
// failures are returned joined.
func (c *CompositeAction) Undo(loc Locator) error {
	var errs []error
	for _, child := range c.children {
		if err := child.Undo(loc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Redo redoes every child, with the same failure policy as Undo.
func (c *CompositeAction) Redo(loc Locator) error {
	var errs []error
	for _, child := range c.children {
		if err := child.Redo(loc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsExtensionOf reports whether other is a composite whose children pair up
// one-to-one with ours, each of its children extending one of ours.
func (c *CompositeAction) IsExtensionOf(other Action) bool {
	o, ok := other.(*CompositeAction)
	if !ok || o == nil {
		return false
	}
	_, ok = c.match(o)
	return ok
}

// Extend extends every child with its partner in other. Nothing is modified
// unless every child finds a partner.
func (c *CompositeAction) Extend(other Action) error {
	o, ok := other.(*CompositeAction)
	if !ok || o == nil {
		return fmt.Errorf("extend composite with %T: %w", other, ErrContractViolation)
	}
	pairs, ok := c.match(o)
	if !ok {
		matched := len(pairs) - unmatched(pairs)
		return fmt.Errorf("extend composite: %d of %d children unmatched: %w",
			len(o.children)-matched, len(o.children), ErrContractViolation)
	}
	for i, j := range pairs {
		if err := c.children[i].Extend(o.children[j]); err != nil {
			return fmt.Errorf("extend composite child %d: %w", i, err)
		}
	}
	return nil
}

// match greedily pairs each of our children with an unused child of other
// that extends it. pairs[i] is the index in other matched to child i, or -1.
// Identity keys make valid partners unique, so greedy matching finds the
// perfect matching whenever one exists.
func (c *CompositeAction) match(other *CompositeAction) (pairs []int, ok bool) {
	pairs = make([]int, len(c.children))
	used := make([]bool, len(other.children))
	ok = len(c.children) == len(other.children)
	for i, mine := range c.children {
		pairs[i] = -1
		for j, theirs := range other.children {
			if used[j] || !theirs.IsExtensionOf(mine) {
				continue
			}
			used[j] = true
			pairs[i] = j
			break
		}
		if pairs[i] < 0 {
			ok = false
		}
	}
	return pairs, ok
}

func unmatched(pairs []int) int {
	n := 0
	for _, j := range pairs {
		if j < 0 {
			n++
		}
	}
	return n
}

// IsNull reports whether every child is null. An empty composite is null.
func (c *CompositeAction) IsNull() bool {
	for _, child := range c.children {
		if !child.IsNull() {
			return false
		}
	}
	return true
}

// Description returns a human-readable description.
func (c *CompositeAction) Description() string {
	if len(c.children) == 1 {
		return Describe(c.children[0])
	}
	return fmt.Sprintf("%d simultaneous edits", len(c.children))
}
