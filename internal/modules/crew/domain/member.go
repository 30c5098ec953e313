package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownFlare = errors.New("unknown flare")
	ErrUnknownEvent = errors.New("unknown crew event")
)

type Status string

const (
	StatusAtOars       Status = "AT_OARS"
	StatusDrifting     Status = "DRIFTING"
	StatusManOverboard Status = "MAN_OVERBOARD"
)

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusAtOars, StatusDrifting, StatusManOverboard:
		return s, nil
	default:
		return "", fmt.Errorf("unknown crew status %q", raw)
	}
}

// Flare is an alert raised on a member. The empty value means none.
type Flare string

const (
	FlareNone  Flare = ""
	FlareRed   Flare = "RED"
	FlareWhite Flare = "WHITE"
	FlareGreen Flare = "GREEN"
)

func ParseFlare(raw string) (Flare, error) {
	f := Flare(strings.ToUpper(strings.TrimSpace(raw)))
	switch f {
	case FlareRed, FlareWhite, FlareGreen:
		return f, nil
	default:
		return FlareNone, fmt.Errorf("%w: %q", ErrUnknownFlare, raw)
	}
}

// Kind separates the real operator from demo members.
type Kind string

const (
	KindOperator  Kind = "operator"
	KindSimulated Kind = "simulated"
)

type Member struct {
	ID            string
	Name          string
	Role          string
	Kind          Kind
	Status        Status
	LastHeartbeat time.Time
	ActiveFlare   Flare
}

func (m Member) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("crew member id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("crew member %s: name is required", m.ID)
	}
	if m.Kind != KindOperator && m.Kind != KindSimulated {
		return fmt.Errorf("crew member %s: unknown kind %q", m.ID, m.Kind)
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return fmt.Errorf("crew member %s: %w", m.ID, err)
	}
	return nil
}
