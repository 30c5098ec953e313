package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	auditdomain "helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/crew/domain"
	crewout "helmwatch/internal/modules/crew/port/out"
	"helmwatch/internal/platform/clock"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/notify"
)

const diagnosticsSource = "crew"

// Roster owns every crew member. Status and flare only change through
// Apply, FireFlare and ResolveFlare.
type Roster struct {
	clock       clock.Clock
	store       crewout.RosterStore
	journal     crewout.AuditJournal
	diagnostics crewout.Diagnostics
	notifier    notify.Notifier
	logger      *slog.Logger

	mu         sync.Mutex
	members    map[string]*domain.Member
	order      []string
	operatorID string
}

// NewRoster seeds the roster. Exactly one member must be the operator.
func NewRoster(
	clk clock.Clock,
	store crewout.RosterStore,
	journal crewout.AuditJournal,
	diagnostics crewout.Diagnostics,
	notifier notify.Notifier,
	logger *slog.Logger,
	seed []domain.Member,
) (*Roster, error) {
	r := &Roster{
		clock:       clk,
		store:       store,
		journal:     journal,
		diagnostics: diagnostics,
		notifier:    notifier,
		logger:      logger,
		members:     make(map[string]*domain.Member, len(seed)),
	}
	now := clk.Now()
	for _, m := range seed {
		if m.Status == "" {
			m.Status = domain.StatusAtOars
		}
		if m.LastHeartbeat.IsZero() {
			m.LastHeartbeat = now
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		if _, dup := r.members[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate crew member %s", apperrors.ErrInvalidInput, m.ID)
		}
		if m.Kind == domain.KindOperator {
			if r.operatorID != "" {
				return nil, fmt.Errorf("%w: more than one operator", apperrors.ErrInvalidInput)
			}
			r.operatorID = m.ID
		}
		member := m
		r.members[m.ID] = &member
		r.order = append(r.order, m.ID)
	}
	if r.operatorID == "" {
		return nil, fmt.Errorf("%w: roster has no operator", apperrors.ErrInvalidInput)
	}
	return r, nil
}

// Restore overlays persisted status, flare and heartbeat on the seeded
// members. Unknown ids in the store are ignored.
func (r *Roster) Restore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	saved, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range saved {
		m, ok := r.members[s.ID]
		if !ok {
			continue
		}
		m.Status = s.Status
		m.ActiveFlare = s.ActiveFlare
		if !s.LastHeartbeat.IsZero() {
			m.LastHeartbeat = s.LastHeartbeat
		}
	}
	return nil
}

func (r *Roster) OperatorID() string {
	return r.operatorID
}

func (r *Roster) Member(id string) (domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return domain.Member{}, fmt.Errorf("%w: crew member %s", apperrors.ErrNotFound, id)
	}
	return *m, nil
}

func (r *Roster) Members() []domain.Member {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.members[id])
	}
	return out
}

// Simulated lists the ids the simulator may drive.
func (r *Roster) Simulated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, id := range r.order {
		if r.members[id].Kind == domain.KindSimulated {
			ids = append(ids, id)
		}
	}
	return ids
}

// Apply runs one event through the transition table. changed is false
// when the event does not apply to the current status; nothing is
// advised or audited in that case.
func (r *Roster) Apply(ctx context.Context, id string, event domain.Event, source domain.Source, reason string) (bool, error) {
	if _, err := domain.ParseEvent(string(event)); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	now := r.clock.Now()

	r.mu.Lock()
	m, ok := r.members[id]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: crew member %s", apperrors.ErrNotFound, id)
	}
	if err := source.Permits(m.Kind); err != nil {
		r.mu.Unlock()
		return false, err
	}
	from := m.Status
	to, effect, applies := domain.Next(from, event)
	if !applies {
		r.mu.Unlock()
		return false, nil
	}
	m.Status = to
	if effect.ResetHeartbeat {
		m.LastHeartbeat = now
	}
	snapshot := *m
	r.mu.Unlock()

	r.diagnostics.Info(diagnosticsSource, "crew transition", map[string]any{
		"crew_id": id,
		"from":    string(from),
		"to":      string(to),
		"event":   string(event),
		"source":  string(source),
	})
	if effect.Advise {
		title, body := advisory(snapshot, event)
		r.send(title, body)
	}
	if effect.Audit {
		r.journal.Record(auditdomain.Record{
			Type:       auditType(event),
			Timestamp:  now,
			CrewID:     id,
			ReasonCode: reason,
			Details:    fmt.Sprintf("%s: %s -> %s (%s)", snapshot.Name, from, to, source),
		})
	}
	r.persist(ctx, snapshot)
	return true, nil
}

// FireFlare raises an alert on a member without touching its status.
// Firing the flare that is already up is a no-op.
func (r *Roster) FireFlare(ctx context.Context, id string, flare domain.Flare, source domain.Source) (bool, error) {
	if _, err := domain.ParseFlare(string(flare)); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	r.mu.Lock()
	m, ok := r.members[id]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: crew member %s", apperrors.ErrNotFound, id)
	}
	if err := source.Permits(m.Kind); err != nil {
		r.mu.Unlock()
		return false, err
	}
	if m.ActiveFlare == flare {
		r.mu.Unlock()
		return false, nil
	}
	m.ActiveFlare = flare
	snapshot := *m
	r.mu.Unlock()

	r.diagnostics.Warn(diagnosticsSource, "flare fired", map[string]any{"crew_id": id, "flare": string(flare)})
	r.send(fmt.Sprintf("%s flare", flare), fmt.Sprintf("%s fired a %s flare.", snapshot.Name, flareMeaning(flare)))
	r.persist(ctx, snapshot)
	return true, nil
}

// ResolveFlare clears the member's flare. Status is left alone.
func (r *Roster) ResolveFlare(ctx context.Context, id string, source domain.Source) (bool, error) {
	r.mu.Lock()
	m, ok := r.members[id]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: crew member %s", apperrors.ErrNotFound, id)
	}
	if err := source.Permits(m.Kind); err != nil {
		r.mu.Unlock()
		return false, err
	}
	if m.ActiveFlare == domain.FlareNone {
		r.mu.Unlock()
		return false, nil
	}
	m.ActiveFlare = domain.FlareNone
	snapshot := *m
	r.mu.Unlock()

	r.diagnostics.Info(diagnosticsSource, "flare resolved", map[string]any{"crew_id": id})
	r.persist(ctx, snapshot)
	return true, nil
}

// Heartbeat marks the member as seen now.
func (r *Roster) Heartbeat(id string) {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[id]; ok {
		m.LastHeartbeat = now
	}
}

func (r *Roster) persist(ctx context.Context, m domain.Member) {
	if r.store == nil {
		return
	}
	if err := r.store.Save(ctx, m); err != nil {
		r.logger.Warn("persist crew member failed", "crew_id", m.ID, "error", err)
	}
}

func (r *Roster) send(title, body string) {
	if r.notifier != nil {
		r.notifier.Send(title, body)
	}
}

func auditType(event domain.Event) auditdomain.Type {
	switch event {
	case domain.EventEmergency:
		return auditdomain.TypeEmergency
	case domain.EventRescue:
		return auditdomain.TypeRescue
	default:
		return auditdomain.TypeDrift
	}
}

func advisory(m domain.Member, event domain.Event) (string, string) {
	switch event {
	case domain.EventDriftDetected:
		if m.Kind == domain.KindOperator {
			return "Drifting", "You have drifted from the helm. Take the oars again when ready."
		}
		return "Crew drifting", m.Name + " has stopped rowing."
	case domain.EventActivityResumed:
		if m.Kind == domain.KindOperator {
			return "Welcome back", "Back at the oars, " + m.Name + "."
		}
		return "Crew back", m.Name + " is rowing again."
	case domain.EventEmergency:
		return "Man overboard", m.Name + " is in the water."
	default:
		return "Crew update", m.Name + " changed status."
	}
}

func flareMeaning(f domain.Flare) string {
	switch f {
	case domain.FlareRed:
		return "distress (red)"
	case domain.FlareWhite:
		return "position (white)"
	default:
		return "all-clear (green)"
	}
}
