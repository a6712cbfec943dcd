package main

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
)

type commandKind int

const (
	commandKey commandKind = iota
	commandNext
	commandPrevious
	commandChapter
	commandHelp
	commandQuit
)

// playerCommand is one line typed while bookctl play is running
type playerCommand struct {
	kind    commandKind
	key     fyne.KeyName
	chapter int
}

const playerHelp = `Commands (press Enter after each):
  <enter>, k   play / pause
  j, l         skip backward / forward
  m            mute
  +, -         volume up / down
  n, p         next / previous chapter
  g <id>       go to chapter
  q            quit`

var commandKeys = map[string]fyne.KeyName{
	"":  fyne.KeySpace,
	"k": fyne.KeyK,
	"j": fyne.KeyJ,
	"l": fyne.KeyL,
	"m": fyne.KeyM,
	"+": fyne.KeyUp,
	"-": fyne.KeyDown,
}

func parseCommand(line string) (playerCommand, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return playerCommand{kind: commandKey, key: commandKeys[""]}, true
	}
	if key, ok := commandKeys[fields[0]]; ok && len(fields) == 1 {
		return playerCommand{kind: commandKey, key: key}, true
	}

	switch fields[0] {
	case "n", "next":
		return playerCommand{kind: commandNext}, true
	case "p", "prev", "previous":
		return playerCommand{kind: commandPrevious}, true
	case "g", "goto":
		if len(fields) != 2 {
			return playerCommand{}, false
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return playerCommand{}, false
		}
		return playerCommand{kind: commandChapter, chapter: id}, true
	case "h", "?", "help":
		return playerCommand{kind: commandHelp}, true
	case "q", "quit", "exit":
		return playerCommand{kind: commandQuit}, true
	}
	return playerCommand{}, false
}
