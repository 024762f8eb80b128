package protocol

import "strings"

// Command names a host operation the UI can invoke.
type Command string

const (
	// CmdExecuteAction decodes the payload as an action and injects it
	CmdExecuteAction Command = "execute-action"

	// CmdGetSettings returns the settings document
	CmdGetSettings Command = "get-settings"

	// CmdSetSettings replaces the settings document with the payload
	CmdSetSettings Command = "set-settings"

	// CmdGetProfiles returns the profiles document
	CmdGetProfiles Command = "get-profiles"

	// CmdSetProfiles replaces the profiles document with the payload
	CmdSetProfiles Command = "set-profiles"
)

// Commands lists every command in a stable order.
var Commands = []Command{
	CmdExecuteAction,
	CmdGetSettings,
	CmdSetSettings,
	CmdGetProfiles,
	CmdSetProfiles,
}

// ParseCommand accepts a command name in dash or underscore spelling.
func ParseCommand(name string) (Command, bool) {
	c := Command(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	for _, known := range Commands {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Request is the generic container for one invocation
type Request struct {
	ID      string  `json:"id,omitempty"`
	Command Command `json:"command"`
	Payload string  `json:"payload,omitempty"`
}

// Response answers a Request with the same ID. Exactly one of Result and
// Error is meaningful: Error is empty on success.
type Response struct {
	ID     string `json:"id,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the response carries no error.
func (r Response) OK() bool {
	return r.Error == ""
}
