package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownType = errors.New("unknown audit record type")

type Type string

const (
	TypeOffline     Type = "OFFLINE"
	TypeDrift       Type = "DRIFT"
	TypeSafetyCheck Type = "SAFETY_CHECK"
	TypeSecurity    Type = "SECURITY"
	TypeEmergency   Type = "EMERGENCY"
	TypeRescue      Type = "RESCUE"
)

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case TypeOffline, TypeDrift, TypeSafetyCheck, TypeSecurity, TypeEmergency, TypeRescue:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
}

// Record is an append-only fact. Nothing updates or deletes it once
// written.
type Record struct {
	ID         string
	Type       Type
	Timestamp  time.Time
	Details    string
	Duration   time.Duration
	CrewID     string
	ReasonCode string
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("audit record id is required")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("audit record timestamp is required")
	}
	if r.Duration < 0 {
		return fmt.Errorf("audit record duration must be non-negative")
	}
	return r.Type.Validate()
}

// Field names the indexed columns QueryByField accepts.
type Field string

const (
	FieldType       Field = "type"
	FieldCrewID     Field = "crew_id"
	FieldReasonCode Field = "reason_code"
)

func (f Field) Validate() error {
	switch f {
	case FieldType, FieldCrewID, FieldReasonCode:
		return nil
	default:
		return fmt.Errorf("field %q is not indexed", string(f))
	}
}

type Filter struct {
	Type   Type
	CrewID string
	Since  time.Time
}
