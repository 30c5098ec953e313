package in

import (
	"context"

	"helmwatch/internal/modules/telemetry/dto"
	telemetryin "helmwatch/internal/modules/telemetry/port/in"
)

// TUIHandler feeds rendered frames into the fps heartbeat.
type TUIHandler struct {
	usecase telemetryin.Usecase
}

func NewTUIHandler(usecase telemetryin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Frame() {
	h.usecase.Frame()
}

func (h TUIHandler) StartSampling(onSample func(fps int)) {
	h.usecase.StartSampling(onSample)
}

func (h TUIHandler) StopSampling() {
	h.usecase.StopSampling()
}

func (h TUIHandler) Vitals(ctx context.Context) (dto.VitalsOutput, error) {
	return h.usecase.Vitals(ctx)
}

func (h TUIHandler) SetDeveloperMode(ctx context.Context, enabled bool) (dto.DeveloperModeOutput, error) {
	return h.usecase.SetDeveloperMode(ctx, enabled)
}
