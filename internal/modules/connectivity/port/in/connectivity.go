package in

import (
	"context"

	"helmwatch/internal/modules/connectivity/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.ConnectionOutput, error)
	Check(ctx context.Context) (dto.ConnectionOutput, error)
	LinkDown(ctx context.Context) error
	LinkUp(ctx context.Context) error
}
