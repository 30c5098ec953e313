package in

import (
	"context"

	"helmwatch/internal/modules/crew/dto"
	crewin "helmwatch/internal/modules/crew/port/in"
)

type CLIHandler struct {
	usecase crewin.Usecase
}

func NewCLIHandler(usecase crewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.MemberOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.MemberOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Emergency(ctx context.Context, id string) (dto.TransitionOutput, error) {
	return h.usecase.Emergency(ctx, id)
}

func (h CLIHandler) Rescue(ctx context.Context, id string) (dto.TransitionOutput, error) {
	return h.usecase.Rescue(ctx, id)
}

func (h CLIHandler) FireFlare(ctx context.Context, id, flare string) (dto.TransitionOutput, error) {
	return h.usecase.FireFlare(ctx, id, flare)
}

func (h CLIHandler) ResolveFlare(ctx context.Context, id string) (dto.TransitionOutput, error) {
	return h.usecase.ResolveFlare(ctx, id)
}
