package usecase

import (
	"context"
	"fmt"
	"strings"

	"helmwatch/internal/modules/telemetry/domain"
	"helmwatch/internal/modules/telemetry/dto"
	telemetryin "helmwatch/internal/modules/telemetry/port/in"
	telemetryout "helmwatch/internal/modules/telemetry/port/out"
	"helmwatch/internal/modules/telemetry/service"
)

type Interactor struct {
	recorder *service.Recorder
	flag     telemetryout.DeveloperModeStore
}

func NewInteractor(recorder *service.Recorder, flag telemetryout.DeveloperModeStore) telemetryin.Usecase {
	return &Interactor{recorder: recorder, flag: flag}
}

func (i *Interactor) Log(_ context.Context, input dto.LogInput) error {
	level, err := domain.ParseLevel(input.Level)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input.Message) == "" {
		return fmt.Errorf("log message is required")
	}
	i.recorder.Log(level, input.Source, input.Message, input.Data)
	return nil
}

func (i *Interactor) Logs(_ context.Context, limit int) ([]dto.LogOutput, error) {
	return toLogOutputs(i.recorder.Entries(limit)), nil
}

func (i *Interactor) Vitals(_ context.Context) (dto.VitalsOutput, error) {
	v := i.recorder.Vitals()
	out := dto.VitalsOutput{
		Timestamp:  v.Timestamp,
		FPS:        v.FPS,
		FPSHistory: v.FPSHistory,
		Environment: dto.EnvironmentOutput{
			Hostname:   v.Environment.Hostname,
			OS:         v.Environment.OS,
			Arch:       v.Environment.Arch,
			GoVersion:  v.Environment.GoVersion,
			NumCPU:     v.Environment.NumCPU,
			Goroutines: v.Environment.Goroutines,
		},
		RecordingEnabled: v.RecordingEnabled,
		RecentLogs:       toLogOutputs(v.RecentLogs),
	}
	if v.Memory != nil {
		out.Memory = &dto.MemoryOutput{
			HeapAllocBytes: v.Memory.HeapAllocBytes,
			HeapSysBytes:   v.Memory.HeapSysBytes,
			NumGC:          v.Memory.NumGC,
		}
	}
	return out, nil
}

// SetDeveloperMode persists the flag, then applies it to the recorder.
// Turning it off purges every recorded entry.
func (i *Interactor) SetDeveloperMode(ctx context.Context, enabled bool) (dto.DeveloperModeOutput, error) {
	if i.flag != nil {
		if err := i.flag.Save(ctx, enabled); err != nil {
			return dto.DeveloperModeOutput{}, err
		}
	}
	if err := i.recorder.SetRecordingEnabled(ctx, enabled); err != nil {
		return dto.DeveloperModeOutput{}, err
	}
	return dto.DeveloperModeOutput{Enabled: enabled}, nil
}

func (i *Interactor) DeveloperMode(ctx context.Context) (dto.DeveloperModeOutput, error) {
	if i.flag == nil {
		return dto.DeveloperModeOutput{Enabled: i.recorder.RecordingEnabled()}, nil
	}
	enabled, err := i.flag.Load(ctx)
	if err != nil {
		return dto.DeveloperModeOutput{}, err
	}
	return dto.DeveloperModeOutput{Enabled: enabled}, nil
}

func (i *Interactor) Frame() {
	i.recorder.Frame()
}

func (i *Interactor) StartSampling(onSample func(fps int)) {
	i.recorder.StartHeartbeat(onSample)
}

func (i *Interactor) StopSampling() {
	i.recorder.StopHeartbeat()
}

func toLogOutputs(entries []domain.Entry) []dto.LogOutput {
	out := make([]dto.LogOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LogOutput{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Level:     string(e.Level),
			Source:    e.Source,
			Message:   e.Message,
			Data:      e.Data,
		})
	}
	return out
}
