package main

type Command int

const (
	CmdNone Command = iota
	CmdJump
	CmdSearch
)

type CommandInput struct {
	cmd Command
	buf string
}

func (m *model) commandBadge(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "[COLUMN]"
	case CmdJump:
		return "[JUMP]"
	default:
		return "[NORMAL]"
	}
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdSearch:
		return "column: "
	case CmdJump:
		return "row: "
	default:
		return ""
	}
}

// activeCommandLine returns the command prompt text for the footer.
func (m *model) activeCommandLine() string {
	badge := m.commandBadge(m.ui.command.cmd)
	prompt := m.commandPrompt(m.ui.command.cmd)
	return badge + " " + prompt + m.ui.command.buf
}
