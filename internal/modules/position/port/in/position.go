package in

import (
	"context"

	"helmwatch/internal/modules/position/dto"
)

type Usecase interface {
	Resolve(ctx context.Context) (dto.FixOutput, error)
	Last(ctx context.Context) (dto.FixOutput, error)
}
