package bot

import (
	"strconv"
	"strings"
)

// Callback scopes.
const (
	scopeNav         = "nav"
	scopeCategory    = "cat"
	scopeProduct     = "prod"
	scopeTaskProcess = "task_proc"
	scopeTask        = "task"
)

// Callback is the decoded callback_data of an inline button, written as
// scope:action or scope:action:id.
type Callback struct {
	Scope  string
	Action string
	ID     int64
	HasID  bool
}

// ParseCallback decodes data. It reports false for anything that is not
// two or three colon-separated parts with a non-negative integer id.
func ParseCallback(data string) (Callback, bool) {
	parts := strings.Split(data, ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Callback{}, false
		}
		return Callback{Scope: parts[0], Action: parts[1]}, true
	case 3:
		if parts[0] == "" || parts[1] == "" || !isDigits(parts[2]) {
			return Callback{}, false
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return Callback{}, false
		}
		return Callback{Scope: parts[0], Action: parts[1], ID: id, HasID: true}, true
	default:
		return Callback{}, false
	}
}

func (c Callback) String() string {
	if !c.HasID {
		return c.Scope + ":" + c.Action
	}
	return c.Scope + ":" + c.Action + ":" + strconv.FormatInt(c.ID, 10)
}

func cb(scope, action string) string {
	return Callback{Scope: scope, Action: action}.String()
}

func cbID(scope, action string, id int64) string {
	return Callback{Scope: scope, Action: action, ID: id, HasID: true}.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
