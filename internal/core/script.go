package core

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/types"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript reports a malformed gesture script.
var ErrInvalidScript = errors.New("invalid script")

// Script is a recorded sequence of editing steps that can be replayed
// against an Editor without a terminal.
//
//	steps:
//	  - select: crate          # adds to the selection; a list of refs also works
//	  - drag: [3, 0]
//	  - drag: [1, 1]
//	  - release
//	  - clear
//	  - nudge: [0, -1]
//	  - undo: 2                # repeat count, defaults to 1
//	  - cancel
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted operation.
type Step struct {
	Op    string
	Refs  []string       // select
	XY    types.Position // drag, nudge: (dx, dy); cursor: absolute
	Count int            // undo, redo
}

const (
	OpSelect  = "select"
	OpClear   = "clear"
	OpCursor  = "cursor"
	OpDrag    = "drag"
	OpRelease = "release"
	OpCancel  = "cancel"
	OpNudge   = "nudge"
	OpUndo    = "undo"
	OpRedo    = "redo"
	OpDelete  = "delete"
	OpYank    = "yank"
)

// UnmarshalYAML accepts either a bare op name or a single-key mapping from
// op name to its argument.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	s.Count = 1
	switch node.Kind {
	case yaml.ScalarNode:
		s.Op = node.Value
		switch s.Op {
		case OpClear, OpRelease, OpCancel, OpUndo, OpRedo, OpDelete, OpYank:
			return nil
		case OpSelect, OpCursor, OpDrag, OpNudge:
			return fmt.Errorf("%w: line %d: %q needs an argument", ErrInvalidScript, node.Line, s.Op)
		}
		return fmt.Errorf("%w: line %d: unknown step %q", ErrInvalidScript, node.Line, s.Op)

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("%w: line %d: step must have exactly one key", ErrInvalidScript, node.Line)
		}
		s.Op = node.Content[0].Value
		return s.decodeArg(node.Content[1])
	}
	return fmt.Errorf("%w: line %d: unexpected step", ErrInvalidScript, node.Line)
}

func (s *Step) decodeArg(arg *yaml.Node) error {
	switch s.Op {
	case OpSelect:
		if arg.Kind == yaml.ScalarNode {
			s.Refs = []string{arg.Value}
			return nil
		}
		return arg.Decode(&s.Refs)
	case OpCursor, OpDrag, OpNudge:
		var pair []int
		if err := arg.Decode(&pair); err != nil || len(pair) != 2 {
			return fmt.Errorf("%w: line %d: %s takes [x, y]", ErrInvalidScript, arg.Line, s.Op)
		}
		s.XY = types.Position{X: pair[0], Y: pair[1]}
		return nil
	case OpUndo, OpRedo:
		if err := arg.Decode(&s.Count); err != nil || s.Count < 0 {
			return fmt.Errorf("%w: line %d: %s takes a count", ErrInvalidScript, arg.Line, s.Op)
		}
		return nil
	case OpClear, OpRelease, OpCancel, OpDelete, OpYank:
		return nil
	}
	return fmt.Errorf("%w: line %d: unknown step %q", ErrInvalidScript, arg.Line, s.Op)
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScript decodes a YAML script.
func ParseScript(content []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(content, &sc); err != nil {
		if errors.Is(err, ErrInvalidScript) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return &sc, nil
}

// Result summarises a replay.
type Result struct {
	Steps       int     // Steps executed
	Diagnostics []error // Non-fatal problems, such as entities missing on undo
}

// Run replays the script against ed. It stops at the first step that
// cannot be executed; lookup failures during undo and redo are collected
// as diagnostics instead.
func (s *Script) Run(ed *Editor) (*Result, error) {
	res := &Result{}
	for i, step := range s.Steps {
		if err := ed.runStep(step, res); err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		res.Steps++
	}
	ed.EndDrag()
	logger.InfoTagf("core", "Replayed %d steps, %d diagnostics", res.Steps, len(res.Diagnostics))
	return res, nil
}

func (e *Editor) runStep(step Step, res *Result) error {
	switch step.Op {
	case OpSelect:
		for _, ref := range step.Refs {
			if err := e.SelectRef(ref); err != nil {
				return err
			}
		}
	case OpClear:
		e.ClearSelection()
	case OpCursor:
		e.SetCursor(step.XY)
	case OpDrag:
		if !e.DragBy(step.XY.X, step.XY.Y) {
			return errors.New("nothing to drag")
		}
	case OpRelease:
		e.EndDrag()
	case OpCancel:
		e.CancelDrag()
	case OpNudge:
		if e.Nudge(step.XY.X, step.XY.Y) == 0 {
			return errors.New("nothing to nudge")
		}
	case OpUndo, OpRedo:
		apply := e.Undo
		if step.Op == OpRedo {
			apply = e.Redo
		}
		for n := 0; n < step.Count; n++ {
			if _, err := apply(); err != nil {
				res.Diagnostics = append(res.Diagnostics, err)
			}
		}
	case OpDelete:
		e.Delete()
	case OpYank:
		e.YankSelection()
	default:
		return fmt.Errorf("%w: unknown step %q", ErrInvalidScript, step.Op)
	}
	return nil
}
