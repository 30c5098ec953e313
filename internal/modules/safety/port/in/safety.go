package in

import (
	"context"

	"helmwatch/internal/modules/safety/dto"
)

type Usecase interface {
	PerformCheck(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error)
}
