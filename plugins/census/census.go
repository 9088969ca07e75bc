// plugins/census/census.go
package census

import (
	"fmt"
	"strings"

	"github.com/bethropolis/stage/internal/plugin"
	"github.com/bethropolis/stage/internal/scene"
)

// Ensure Census implements plugin.Plugin
var _ plugin.Plugin = (*Census)(nil)

// Census counts the entities in the scene by kind.
type Census struct {
	api plugin.EditorAPI
}

// New creates a new instance of the Census plugin.
func New() *Census {
	return &Census{}
}

// Name returns the unique name of the plugin.
func (p *Census) Name() string {
	return "census"
}

// Initialize registers the :census command.
func (p *Census) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("census", p.executeCensus); err != nil {
		return fmt.Errorf("failed to register 'census' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Census) Shutdown() error {
	return nil
}

func (p *Census) executeCensus(args []string) error {
	if p.api == nil {
		return fmt.Errorf("census plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Summary(p.api.Editor().Scene()))
	return nil
}

// Summary formats entity counts in draw order, e.g. "3 entities: 1 path, 2 object".
func Summary(sc *scene.Scene) string {
	counts := make(map[scene.Kind]int)
	for _, e := range sc.Entities() {
		counts[e.Kind]++
	}
	var parts []string
	for _, k := range scene.Kinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if len(parts) == 0 {
		return "0 entities"
	}
	return fmt.Sprintf("%d entities: %s", sc.Len(), strings.Join(parts, ", "))
}
