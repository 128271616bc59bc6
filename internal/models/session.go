package models

import "fmt"

// SessionMode selects which tail of the login sequence runs after submit
type SessionMode int

const (
	StandardLogin SessionMode = iota
	AdminConsoleLogin
)

func (m SessionMode) String() string {
	switch m {
	case StandardLogin:
		return "standard"
	case AdminConsoleLogin:
		return "admin"
	default:
		return fmt.Sprintf("SessionMode(%d)", int(m))
	}
}

// ParseSessionMode maps "standard" or "admin" to a SessionMode
func ParseSessionMode(s string) (SessionMode, error) {
	switch s {
	case "standard", "":
		return StandardLogin, nil
	case "admin":
		return AdminConsoleLogin, nil
	}
	return StandardLogin, fmt.Errorf("unknown session mode %q", s)
}

// Presence tells a guarded step whether its target element must exist
type Presence int

const (
	Mandatory Presence = iota
	// Optional turns the absence of the element into a successful no-op
	Optional
)
