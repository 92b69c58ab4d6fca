package entities

// Command is the closed set of bot commands.
type Command int

const (
	CommandUnknown Command = iota
	CommandStart
	CommandSetLang
	CommandLang
	CommandHelp
)

var commandNames = map[string]Command{
	"start":   CommandStart,
	"setlang": CommandSetLang,
	"lang":    CommandLang,
	"help":    CommandHelp,
}

// ParseCommand maps a command token (without prefix) to a Command.
func ParseCommand(name string) Command {
	if c, ok := commandNames[name]; ok {
		return c
	}
	return CommandUnknown
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "unknown"
}

// RouteKind tells which variant a Route holds.
type RouteKind int

const (
	RoutePlainText RouteKind = iota
	RouteCommand
	RouteExplicitTranslate
)

// Route is the classification of an inbound text message.
//
//   - RouteCommand: Command, Name and Args are set.
//   - RouteExplicitTranslate: Text is the body and Target the catalog code.
//   - RoutePlainText: Text is the raw message.
type Route struct {
	Kind    RouteKind
	Command Command
	Name    string
	Args    []string
	Text    string
	Target  string
}

// PlainText builds a RoutePlainText value.
func PlainText(text string) Route {
	return Route{Kind: RoutePlainText, Text: text}
}

// CommandRoute builds a RouteCommand value.
func CommandRoute(name string, args []string) Route {
	if args == nil {
		args = []string{}
	}
	return Route{Kind: RouteCommand, Command: ParseCommand(name), Name: name, Args: args}
}

// ExplicitTranslate builds a RouteExplicitTranslate value.
func ExplicitTranslate(text, target string) Route {
	return Route{Kind: RouteExplicitTranslate, Text: text, Target: target}
}
