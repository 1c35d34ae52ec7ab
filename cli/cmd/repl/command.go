package repl

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// command is a control-mode command.
type command struct {
	name  string
	alias string
	help  string
}

var commands = []command{
	{name: "help", alias: "h", help: "Print this message"},
	{name: "list", alias: "l", help: "List root bindings"},
	{name: "tree", alias: "t", help: "Print the namespace tree"},
	{name: "clear", alias: "c", help: "Clear screen"},
	{name: "quit", alias: "q", help: "Exit REPL"},
}

// ctrlCommands are the completion candidates of control mode.
var ctrlCommands = commandNames()

func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// lookupCommand returns the canonical name of word, which may be a command
// name or its alias.
func lookupCommand(word string) (string, bool) {
	if word == "exit" {
		return "quit", true
	}

	for _, c := range commands {
		if word == c.name || word == c.alias {
			return c.name, true
		}
	}

	return "", false
}

// helpText renders the control commands and key bindings.
func helpText() string {
	var b strings.Builder

	b.WriteString("\nCommands (press Esc to toggle mode):\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-8s %s\n", c.name, c.help)
	}

	b.WriteString("\nInput:\n\n")
	b.WriteString("  Type a dotted path such as mylib.math.add to describe its binding\n")
	b.WriteString("  Type ?<expr> to select symbols, e.g. ?kind == \"function\" && arity > 1\n")
	b.WriteString("\nKeys:\n\n")

	for _, k := range keys.bindings() {
		h := k.Help()
		fmt.Fprintf(&b, "  %-16s %s\n", h.Key, h.Desc)
	}

	return b.String()
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	word, args, _ := strings.Cut(input, " ")
	if word == "" {
		return m, nil
	}

	echo := tea.Println(ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", word),
		slog.String("args", strings.TrimSpace(args)),
	)

	name, ok := lookupCommand(word)
	if !ok {
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + word + " (try 'help')"),
		)
	}

	switch name {
	case "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)
	case "help":
		return m, tea.Sequence(echo, tea.Println(helpText()))
	case "list":
		return m, tea.Sequence(echo, tea.Println(m.eval.list()))
	case "tree":
		return m, tea.Sequence(echo, tea.Println(m.eval.tree()))
	default:
		return m, tea.ClearScreen
	}
}
