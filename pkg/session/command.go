package session

// Command identifies an interactive command
type Command int

const (
	CmdBase Command = iota
	CmdDiff
	CmdList
	CmdView
	CmdHelp
	CmdWhat
	CmdQuit
)

// aliases maps every accepted command word to its command
var aliases = map[string]Command{
	"b":    CmdBase,
	"base": CmdBase,
	"d":    CmdDiff,
	"diff": CmdDiff,
	"ls":   CmdList,
	"l":    CmdList,
	"list": CmdList,
	"v":    CmdView,
	"view": CmdView,
	"h":    CmdHelp,
	"help": CmdHelp,
	"?":    CmdHelp,
	"w":    CmdWhat,
	"what": CmdWhat,
	"q":    CmdQuit,
	"quit": CmdQuit,
	"e":    CmdQuit,
	"exit": CmdQuit,
}

// ParseCommand decodes a command word. Matching is case-sensitive.
func ParseCommand(word string) (Command, bool) {
	cmd, ok := aliases[word]
	return cmd, ok
}

func (c Command) String() string {
	switch c {
	case CmdBase:
		return "base"
	case CmdDiff:
		return "diff"
	case CmdList:
		return "list"
	case CmdView:
		return "view"
	case CmdHelp:
		return "help"
	case CmdWhat:
		return "what"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

const helpText = `commands:
  b, base GROUP            make GROUP the base group and show all groups
  d, diff GROUP [GROUP]    diff two groups; the second defaults to the base group
  l, ls, list [GROUP...]   list every file of each GROUP
  v, view                  show all groups
  w, what [GROUP...]       show the group number each GROUP resolves to
  h, help, ?               show this help
  q, quit, e, exit         leave

GROUP is a group number, b or base for the base group, or a regular
expression; the first group holding a matching file name is used.
`
