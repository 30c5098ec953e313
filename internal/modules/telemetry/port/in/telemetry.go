package in

import (
	"context"

	"helmwatch/internal/modules/telemetry/dto"
)

type Usecase interface {
	Log(ctx context.Context, input dto.LogInput) error
	Logs(ctx context.Context, limit int) ([]dto.LogOutput, error)
	Vitals(ctx context.Context) (dto.VitalsOutput, error)
	SetDeveloperMode(ctx context.Context, enabled bool) (dto.DeveloperModeOutput, error)
	DeveloperMode(ctx context.Context) (dto.DeveloperModeOutput, error)
	Frame()
	StartSampling(onSample func(fps int))
	StopSampling()
}
