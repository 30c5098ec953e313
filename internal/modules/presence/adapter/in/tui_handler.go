package in

import (
	"context"

	"helmwatch/internal/modules/presence/dto"
	presencein "helmwatch/internal/modules/presence/port/in"
)

// TUIHandler forwards terminal focus and input events to the watchdog.
type TUIHandler struct {
	usecase presencein.Usecase
}

func NewTUIHandler(usecase presencein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Focus(ctx context.Context) error {
	return h.usecase.VisibilityChanged(ctx, true)
}

func (h TUIHandler) Blur(ctx context.Context) error {
	return h.usecase.VisibilityChanged(ctx, false)
}

func (h TUIHandler) Input(ctx context.Context) error {
	return h.usecase.Activity(ctx)
}

func (h TUIHandler) Status(ctx context.Context) (dto.PresenceOutput, error) {
	return h.usecase.Status(ctx)
}
