package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/stage/internal/logger"
)

// CommandFunc runs a ':' command with its whitespace-separated arguments.
type CommandFunc func(args []string) error

// Registrar accepts command registrations.
type Registrar interface {
	RegisterCommand(name string, fn CommandFunc) error
}

// Registry is a name to command table.
type Registry struct {
	commands map[string]CommandFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandFunc)}
}

// RegisterCommand adds a command. Names are unique.
func (r *Registry) RegisterCommand(name string, fn CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.DebugTagf("commands", "Registered command ':%s'", name)
	return nil
}

// Execute parses a command line and runs the named command.
func (r *Registry) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	name, args := parts[0], parts[1:]
	fn, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	logger.DebugTagf("commands", "Executing ':%s' with args %v", name, args)
	if err := fn(args); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
