package usecase

import (
	"context"

	"helmwatch/internal/modules/position/domain"
	"helmwatch/internal/modules/position/dto"
	positionin "helmwatch/internal/modules/position/port/in"
	"helmwatch/internal/modules/position/service"
)

type Interactor struct {
	resolver *service.Resolver
}

func NewInteractor(resolver *service.Resolver) positionin.Usecase {
	return &Interactor{resolver: resolver}
}

func (i *Interactor) Resolve(ctx context.Context) (dto.FixOutput, error) {
	return toOutput(i.resolver.Resolve(ctx)), nil
}

// Last resolves on first use so callers always get a position.
func (i *Interactor) Last(ctx context.Context) (dto.FixOutput, error) {
	fix := i.resolver.Last()
	if fix.Status == "" {
		fix = i.resolver.Resolve(ctx)
	}
	return toOutput(fix), nil
}

func toOutput(f domain.Fix) dto.FixOutput {
	return dto.FixOutput{
		Status:     string(f.Status),
		Label:      f.Label,
		Latitude:   f.Coordinates.Latitude,
		Longitude:  f.Coordinates.Longitude,
		Message:    f.Message,
		ResolvedAt: f.ResolvedAt,
	}
}
