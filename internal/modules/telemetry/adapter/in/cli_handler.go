package in

import (
	"context"

	"helmwatch/internal/modules/telemetry/dto"
	telemetryin "helmwatch/internal/modules/telemetry/port/in"
)

type CLIHandler struct {
	usecase telemetryin.Usecase
}

func NewCLIHandler(usecase telemetryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Log(ctx context.Context, level, source, message string) error {
	return h.usecase.Log(ctx, dto.LogInput{Level: level, Source: source, Message: message})
}

func (h CLIHandler) Logs(ctx context.Context, limit int) ([]dto.LogOutput, error) {
	return h.usecase.Logs(ctx, limit)
}

func (h CLIHandler) Vitals(ctx context.Context) (dto.VitalsOutput, error) {
	return h.usecase.Vitals(ctx)
}

func (h CLIHandler) SetDeveloperMode(ctx context.Context, enabled bool) (dto.DeveloperModeOutput, error) {
	return h.usecase.SetDeveloperMode(ctx, enabled)
}

func (h CLIHandler) DeveloperMode(ctx context.Context) (dto.DeveloperModeOutput, error) {
	return h.usecase.DeveloperMode(ctx)
}
