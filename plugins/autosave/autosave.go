package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	// Default configuration values
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave plugin periodically saves a modified scene to its file.
type AutoSave struct {
	api plugin.EditorAPI // To interact with the editor

	// Configuration
	mutex    sync.RWMutex // Protects access to config fields below
	enabled  bool
	interval time.Duration

	// Runtime state
	stopChan chan struct{}  // Signals the saver goroutine to stop
	wg       sync.WaitGroup // Waits for the goroutine to finish
}

// New creates a new instance of the AutoSave plugin.
func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
//
//	[plugins.autosave]
//	enabled = true
//	interval = "30s"
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsedInterval, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsedInterval <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsedInterval
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

// saverLoop asks the event loop to save on every tick. The scene is never
// touched from this goroutine.
func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.api.Post(p.saveIfModified); err != nil {
				logger.Debugf("%s: Could not schedule save: %v", p.Name(), err)
			}
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified runs on the event loop.
func (p *AutoSave) saveIfModified() {
	ed := p.api.Editor()
	if !ed.IsModified() {
		return
	}
	if ed.FilePath() == "" {
		logger.Debugf("%s: Scene is modified but has no file, skipping auto-save.", p.Name())
		return
	}

	if err := ed.Save(""); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), ed.FilePath(), err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
		return
	}
	logger.Infof("%s: Auto-saved %s", p.Name(), ed.FilePath())
}
