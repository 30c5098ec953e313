package usecase

import (
	"context"
	"fmt"
	"strings"

	"helmwatch/internal/modules/session/domain"
	sessiondto "helmwatch/internal/modules/session/dto"
	sessionin "helmwatch/internal/modules/session/port/in"
	sessionout "helmwatch/internal/modules/session/port/out"
	"helmwatch/internal/modules/session/service"
	apperrors "helmwatch/internal/platform/errors"
)

type Interactor struct {
	clock   *service.SessionClock
	logbook sessionout.LogbookReader
}

// NewInteractor takes an optional logbook reader; without one Logbook
// reports ErrNotFound.
func NewInteractor(clock *service.SessionClock, logbook sessionout.LogbookReader) sessionin.Usecase {
	return &Interactor{clock: clock, logbook: logbook}
}

func (i *Interactor) Start(ctx context.Context) (sessiondto.StartOutput, error) {
	session, err := i.clock.Start(ctx)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{SessionID: session.ID, StartedAt: session.StartedAt}, nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.SettlementOutput, error) {
	settlement, err := i.clock.Stop(ctx)
	if err != nil {
		return sessiondto.SettlementOutput{}, err
	}
	return toSettlementOutput(settlement), nil
}

func (i *Interactor) RequestStop(ctx context.Context) (sessiondto.SettlementOutput, error) {
	settlement, err := i.clock.RequestStop(ctx)
	if err != nil {
		return sessiondto.SettlementOutput{}, err
	}
	return toSettlementOutput(settlement), nil
}

func (i *Interactor) RecordCatch(ctx context.Context) (sessiondto.CatchOutput, error) {
	n, err := i.clock.RecordCatch(ctx)
	if err != nil {
		return sessiondto.CatchOutput{}, err
	}
	status, err := i.clock.Status(ctx)
	if err != nil {
		return sessiondto.CatchOutput{}, err
	}
	return sessiondto.CatchOutput{SessionID: status.SessionID, ItemsCaught: n}, nil
}

func (i *Interactor) Sign(ctx context.Context, input sessiondto.SignInput) (sessiondto.SessionOutput, error) {
	id := strings.TrimSpace(input.SessionID)
	if id == "" {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	session, err := i.clock.Sign(ctx, id, input.Efficiency)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	status, err := i.clock.Status(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return sessiondto.StatusOutput{
		Open:           status.Open,
		SessionID:      status.SessionID,
		StartedAt:      status.StartedAt,
		ElapsedSeconds: int64(status.Elapsed.Seconds()),
		ShiftSeconds:   int64(status.Shift.Seconds()),
		Overtime:       status.Overtime,
		ItemsCaught:    status.ItemsCaught,
		Earnings:       status.Earnings,
	}, nil
}

// Logbook returns the written entry of a closed session.
func (i *Interactor) Logbook(ctx context.Context, sessionID string) (sessiondto.LogbookOutput, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return sessiondto.LogbookOutput{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	session, err := i.clock.Session(ctx, id)
	if err != nil {
		return sessiondto.LogbookOutput{}, err
	}
	if session.IsOpen() {
		return sessiondto.LogbookOutput{}, fmt.Errorf("%w: session %s is still under way", apperrors.ErrInvalidInput, id)
	}
	if i.logbook == nil {
		return sessiondto.LogbookOutput{}, fmt.Errorf("%w: no logbook configured", apperrors.ErrNotFound)
	}
	entry, err := i.logbook.Read(ctx, session)
	if err != nil {
		return sessiondto.LogbookOutput{}, err
	}
	return sessiondto.LogbookOutput{SessionID: id, Markdown: entry}, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.clock.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionOutput(s))
	}
	return out, nil
}

func toSettlementOutput(s domain.Settlement) sessiondto.SettlementOutput {
	return sessiondto.SettlementOutput{
		SessionID:       s.SessionID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationSeconds: s.DurationSeconds,
		Earnings:        s.Earnings,
		ItemsCaught:     s.ItemsCaught,
		Overtime:        s.Overtime,
	}
}

func toSessionOutput(s domain.Session) sessiondto.SessionOutput {
	out := sessiondto.SessionOutput{
		ID:          s.ID,
		StartedAt:   s.StartedAt,
		ItemsCaught: s.ItemsCaught,
		Earnings:    s.Earnings,
	}
	if !s.IsOpen() {
		ended := s.EndedAt
		out.EndedAt = &ended
	}
	if s.IsSigned() {
		signed := s.SignedAt
		efficiency := s.Efficiency
		out.SignedAt = &signed
		out.Efficiency = &efficiency
	}
	return out
}
