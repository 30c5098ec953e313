package usecase

import (
	"context"
	"fmt"

	"helmwatch/internal/modules/crew/domain"
	"helmwatch/internal/modules/crew/dto"
	crewin "helmwatch/internal/modules/crew/port/in"
	"helmwatch/internal/modules/crew/service"
	apperrors "helmwatch/internal/platform/errors"
)

// Interactor serves manual actions, so every transition it makes is
// attributed to the operator.
type Interactor struct {
	roster *service.Roster
}

func NewInteractor(roster *service.Roster) crewin.Usecase {
	return &Interactor{roster: roster}
}

func (i *Interactor) List(_ context.Context) ([]dto.MemberOutput, error) {
	members := i.roster.Members()
	out := make([]dto.MemberOutput, 0, len(members))
	for _, m := range members {
		out = append(out, toOutput(m))
	}
	return out, nil
}

func (i *Interactor) Get(_ context.Context, id string) (dto.MemberOutput, error) {
	m, err := i.roster.Member(id)
	if err != nil {
		return dto.MemberOutput{}, err
	}
	return toOutput(m), nil
}

func (i *Interactor) Emergency(ctx context.Context, id string) (dto.TransitionOutput, error) {
	return i.apply(ctx, id, domain.EventEmergency, "emergency_signal")
}

func (i *Interactor) Rescue(ctx context.Context, id string) (dto.TransitionOutput, error) {
	return i.apply(ctx, id, domain.EventRescue, "rescued")
}

func (i *Interactor) FireFlare(ctx context.Context, id, flare string) (dto.TransitionOutput, error) {
	parsed, err := domain.ParseFlare(flare)
	if err != nil {
		return dto.TransitionOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	changed, err := i.roster.FireFlare(ctx, id, parsed, domain.SourceOperator)
	if err != nil {
		return dto.TransitionOutput{}, err
	}
	return i.output(id, changed)
}

func (i *Interactor) ResolveFlare(ctx context.Context, id string) (dto.TransitionOutput, error) {
	changed, err := i.roster.ResolveFlare(ctx, id, domain.SourceOperator)
	if err != nil {
		return dto.TransitionOutput{}, err
	}
	return i.output(id, changed)
}

func (i *Interactor) apply(ctx context.Context, id string, event domain.Event, reason string) (dto.TransitionOutput, error) {
	changed, err := i.roster.Apply(ctx, id, event, domain.SourceOperator, reason)
	if err != nil {
		return dto.TransitionOutput{}, err
	}
	return i.output(id, changed)
}

func (i *Interactor) output(id string, changed bool) (dto.TransitionOutput, error) {
	m, err := i.roster.Member(id)
	if err != nil {
		return dto.TransitionOutput{}, err
	}
	return dto.TransitionOutput{Member: toOutput(m), Changed: changed}, nil
}

func toOutput(m domain.Member) dto.MemberOutput {
	return dto.MemberOutput{
		ID:            m.ID,
		Name:          m.Name,
		Role:          m.Role,
		Kind:          string(m.Kind),
		Status:        string(m.Status),
		LastHeartbeat: m.LastHeartbeat,
		ActiveFlare:   string(m.ActiveFlare),
	}
}
