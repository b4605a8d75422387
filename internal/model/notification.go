package model

import "fmt"

// NotificationKind tags a Notification.
type NotificationKind int

const (
	// Passthrough carries a message the tiler does not handle; the event
	// source gets it back unmodified for default processing.
	Passthrough NotificationKind = iota
	Created
	ShellCreated
	Destroyed
	ShellDestroyed
	Uncloaked
	Cloaked
	MinimizeStart
	MinimizeEnd
	MoveResizeEnd
	DisplayChange
	LayoutSwitch
	Activated
	// Arrange requests a re-arrange without any other state change.
	Arrange
)

var notificationNames = map[NotificationKind]string{
	Passthrough:    "passthrough",
	Created:        "created",
	ShellCreated:   "shell-created",
	Destroyed:      "destroyed",
	ShellDestroyed: "shell-destroyed",
	Uncloaked:      "uncloaked",
	Cloaked:        "cloaked",
	MinimizeStart:  "minimize-start",
	MinimizeEnd:    "minimize-end",
	MoveResizeEnd:  "move-resize-end",
	DisplayChange:  "display-change",
	LayoutSwitch:   "layout-switch",
	Activated:      "activated",
	Arrange:        "arrange",
}

func (k NotificationKind) String() string {
	if s, ok := notificationNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NotificationKind(%d)", int(k))
}

// ParseNotificationKind converts a kind name as printed by String.
func ParseNotificationKind(s string) (NotificationKind, error) {
	for k, name := range notificationNames {
		if name == s {
			return k, nil
		}
	}
	return Passthrough, fmt.Errorf("unknown notification kind %q", s)
}

// Notification is one lifecycle event delivered to the dispatcher.
// Only the fields relevant to Kind are set.
type Notification struct {
	Kind   NotificationKind
	Handle WindowHandle
	// Layout is the requested mode for LayoutSwitch.
	Layout LayoutMode
	// Area is the new working area for DisplayChange; zero means re-query.
	Area Rect
	// Payload is the backend's original message for Passthrough.
	Payload any
}

func (n Notification) String() string {
	switch n.Kind {
	case LayoutSwitch:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Layout)
	case DisplayChange, Arrange, Passthrough:
		return n.Kind.String()
	default:
		return fmt.Sprintf("%s(%s)", n.Kind, n.Handle)
	}
}
