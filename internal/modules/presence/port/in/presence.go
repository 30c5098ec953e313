package in

import (
	"context"

	"helmwatch/internal/modules/presence/dto"
)

type Usecase interface {
	VisibilityChanged(ctx context.Context, visible bool) error
	Activity(ctx context.Context) error
	Status(ctx context.Context) (dto.PresenceOutput, error)
}
