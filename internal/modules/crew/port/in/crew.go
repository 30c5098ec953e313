package in

import (
	"context"

	"helmwatch/internal/modules/crew/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.MemberOutput, error)
	Get(ctx context.Context, id string) (dto.MemberOutput, error)
	Emergency(ctx context.Context, id string) (dto.TransitionOutput, error)
	Rescue(ctx context.Context, id string) (dto.TransitionOutput, error)
	FireFlare(ctx context.Context, id, flare string) (dto.TransitionOutput, error)
	ResolveFlare(ctx context.Context, id string) (dto.TransitionOutput, error)
}
