// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/stage/internal/theme"
	"github.com/bethropolis/stage/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// HistoryInfo is the undo/redo state shown on the right of the bar.
type HistoryInfo struct {
	CanUndo  bool
	CanRedo  bool
	NextUndo string // Description of the entry Undo would revert
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields
	now    func() time.Time

	// Content fields (updated externally)
	sceneName string
	modified  bool
	cursorPos types.Position
	selected  int
	mode      string
	history   HistoryInfo

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	tempWarning     bool
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetSceneInfo updates the scene name shown in the status bar.
func (sb *StatusBar) SetSceneInfo(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.sceneName = name
}

// SetModified toggles the unsaved-changes indicator.
func (sb *StatusBar) SetModified(modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.modified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetSelectionInfo updates the number of selected entities.
func (sb *StatusBar) SetSelectionInfo(count int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.selected = count
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.mode = mode
}

// SetHistoryInfo updates the undo/redo indicators.
func (sb *StatusBar) SetHistoryInfo(info HistoryInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.history = info
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetWarning displays a temporary message in the warning style.
func (sb *StatusBar) SetWarning(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(warning bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.tempWarning = warning
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// leftText builds the scene/cursor/selection part of the status line.
func (sb *StatusBar) leftText() string {
	name := sb.sceneName
	if name == "" {
		name = "[No Scene]"
	}
	if sb.modified {
		name += " [Modified]"
	}
	text := fmt.Sprintf("%s -- %v", name, sb.cursorPos)
	if sb.selected > 0 {
		text += fmt.Sprintf(" -- %d selected", sb.selected)
	}
	return text
}

// rightText builds the history part of the status line.
func (sb *StatusBar) rightText() string {
	var parts []string
	if sb.history.CanUndo {
		undo := "undo"
		if sb.history.NextUndo != "" {
			undo = "undo: " + sb.history.NextUndo
		}
		parts = append(parts, undo)
	}
	if sb.history.CanRedo {
		parts = append(parts, "redo")
	}
	return strings.Join(parts, " | ")
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1 // Status bar is always the last line

	sb.mu.Lock()
	// Clear expired temporary message before choosing the text.
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	base := th.GetStyle(theme.StyleStatusBar)
	var left string
	leftStyle := base
	if isTempMsgActive {
		left = sb.tempMessage
		leftStyle = th.GetStyle(theme.StyleStatusBarMessage)
		if sb.tempWarning {
			leftStyle = th.GetStyle(theme.StyleStatusBarWarning)
		}
	} else {
		left = sb.leftText()
	}
	mode := sb.mode
	right := sb.rightText()
	sb.mu.Unlock()

	// Fill background first
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	if mode != "" {
		x = drawText(screen, x, y, width, " "+mode+" ", th.GetStyle(theme.StyleStatusBarMode))
	}
	x = drawText(screen, x+1, y, width, left, leftStyle)

	// Right-align the history part if it still fits after the left part.
	if right != "" {
		rw := uniseg.StringWidth(right)
		if start := width - rw - 1; start > x {
			drawText(screen, start, y, width, right, base)
		}
	}
}

// drawText draws text from column x, stopping at limit. It returns the
// column after the last cluster drawn.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > limit {
			break // Stop if cluster doesn't fit
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
