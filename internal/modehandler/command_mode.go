package modehandler

import (
	"github.com/bethropolis/stage/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// handleKeyCommand edits the command line. Runes are taken literally so
// keys bound to actions in normal mode can still be typed.
func (mh *ModeHandler) handleKeyCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		mh.cmdBuffer = append(mh.cmdBuffer, ev.Rune())

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(mh.cmdBuffer) == 0 {
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
			logger.DebugTagf("mode", "Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case tcell.KeyEnter:
		mh.currentMode = ModeNormal
		mh.executeCommand()
		return true

	case tcell.KeyEscape, tcell.KeyCtrlC:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.ResetTemporaryMessage()
		logger.DebugTagf("mode", "Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetTemporaryMessage(":%s", string(mh.cmdBuffer))
	return true
}

// executeCommand runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	line := string(mh.cmdBuffer)
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.ResetTemporaryMessage()

	if err := mh.commands.Execute(line); err != nil {
		mh.statusBar.SetWarning("%v", err)
	}
}
