package usecase

import (
	"context"

	"helmwatch/internal/modules/audit/domain"
	"helmwatch/internal/modules/audit/dto"
	auditin "helmwatch/internal/modules/audit/port/in"
	auditout "helmwatch/internal/modules/audit/port/out"
)

type Interactor struct {
	store auditout.Store
}

func NewInteractor(store auditout.Store) auditin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error) {
	var (
		records []domain.Record
		err     error
	)
	switch {
	case input.Type != "":
		kind, parseErr := domain.ParseType(input.Type)
		if parseErr != nil {
			return nil, parseErr
		}
		records, err = i.store.QueryByField(ctx, domain.FieldType, string(kind))
	case input.CrewID != "":
		records, err = i.store.QueryByField(ctx, domain.FieldCrewID, input.CrewID)
	default:
		records, err = i.store.Recent(ctx, input.Limit)
	}
	if err != nil {
		return nil, err
	}
	if input.Limit > 0 && len(records) > input.Limit {
		records = records[len(records)-input.Limit:]
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, rec := range records {
		out = append(out, toOutput(rec))
	}
	return out, nil
}

func (i *Interactor) Count(ctx context.Context, input dto.CountInput) (int, error) {
	filter := domain.Filter{CrewID: input.CrewID, Since: input.Since}
	if input.Type != "" {
		kind, err := domain.ParseType(input.Type)
		if err != nil {
			return 0, err
		}
		filter.Type = kind
	}
	return i.store.Count(ctx, filter)
}

func toOutput(rec domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ID:         rec.ID,
		Type:       string(rec.Type),
		Timestamp:  rec.Timestamp,
		Details:    rec.Details,
		Duration:   rec.Duration,
		CrewID:     rec.CrewID,
		ReasonCode: rec.ReasonCode,
	}
}
