package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

type keyAction uint8

const (
	actionMove keyAction = iota
	actionQuit
	actionMute
)

// classifyKey separates client commands from keys handed to the sampler
func classifyKey(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		if ev.Rune() == 'm' || ev.Rune() == 'M' {
			return actionMute
		}
	}
	return actionMove
}

// keyName returns the keymap name of a terminal key event
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return strings.ToLower(string(ev.Rune())), true
	case tcell.KeyUp:
		return "up", true
	case tcell.KeyDown:
		return "down", true
	case tcell.KeyLeft:
		return "left", true
	case tcell.KeyRight:
		return "right", true
	}
	return "", false
}
