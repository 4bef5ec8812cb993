package tui

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wschat/internal/store"
)

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	name, args, _ := strings.Cut(input, " ")
	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}
}

// Commander is what commands act on.
type Commander interface {
	OpenChat(name string)
	Connect()
	Disconnect()
	SetTab(tab store.Tab)
	ShowHelp()
	Quit()
}

// Run executes c against t.
func (c Command) Run(t Commander) error {
	switch c.Name {
	case "":
		return nil
	case "chat", "c":
		if c.Args == "" {
			return fmt.Errorf("usage: chat <name>")
		}
		t.OpenChat(c.Args)
	case "connect":
		t.Connect()
	case "disconnect":
		t.Disconnect()
	case "recent":
		t.SetTab(store.TabRecent)
	case "new":
		t.SetTab(store.TabNew)
	case "help", "h":
		t.ShowHelp()
	case "quit", "q":
		t.Quit()
	default:
		return fmt.Errorf("unknown command %q", c.Name)
	}
	return nil
}
