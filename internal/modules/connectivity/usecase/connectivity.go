package usecase

import (
	"context"

	"helmwatch/internal/modules/connectivity/domain"
	"helmwatch/internal/modules/connectivity/dto"
	connectivityin "helmwatch/internal/modules/connectivity/port/in"
	"helmwatch/internal/modules/connectivity/service"
)

type Interactor struct {
	monitor *service.Monitor
}

func NewInteractor(monitor *service.Monitor) connectivityin.Usecase {
	return &Interactor{monitor: monitor}
}

func (i *Interactor) Status(_ context.Context) (dto.ConnectionOutput, error) {
	return toOutput(i.monitor.Snapshot()), nil
}

func (i *Interactor) Check(ctx context.Context) (dto.ConnectionOutput, error) {
	if err := ctx.Err(); err != nil {
		return dto.ConnectionOutput{}, err
	}
	i.monitor.Tick(ctx)
	return toOutput(i.monitor.Snapshot()), nil
}

func (i *Interactor) LinkDown(_ context.Context) error {
	i.monitor.LinkDown()
	return nil
}

func (i *Interactor) LinkUp(_ context.Context) error {
	i.monitor.LinkUp()
	return nil
}

func toOutput(s domain.Snapshot) dto.ConnectionOutput {
	out := dto.ConnectionOutput{
		State:     string(s.State),
		LatencyMS: s.Latency.Milliseconds(),
		CheckedAt: s.CheckedAt,
	}
	if !s.OutageStart.IsZero() {
		start := s.OutageStart
		out.OutageStart = &start
	}
	return out
}
