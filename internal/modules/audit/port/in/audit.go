package in

import (
	"context"

	"helmwatch/internal/modules/audit/dto"
)

type Usecase interface {
	List(ctx context.Context, input dto.ListInput) ([]dto.RecordOutput, error)
	Count(ctx context.Context, input dto.CountInput) (int, error)
}
