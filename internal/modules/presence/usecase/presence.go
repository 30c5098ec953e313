package usecase

import (
	"context"

	"helmwatch/internal/modules/presence/dto"
	presencein "helmwatch/internal/modules/presence/port/in"
	"helmwatch/internal/modules/presence/service"
)

type Interactor struct {
	watchdog *service.Watchdog
}

func NewInteractor(watchdog *service.Watchdog) presencein.Usecase {
	return &Interactor{watchdog: watchdog}
}

func (i *Interactor) VisibilityChanged(_ context.Context, visible bool) error {
	i.watchdog.OnVisibilityChange(visible)
	return nil
}

func (i *Interactor) Activity(_ context.Context) error {
	i.watchdog.RecordActivity()
	return nil
}

func (i *Interactor) Status(_ context.Context) (dto.PresenceOutput, error) {
	return dto.PresenceOutput{
		Visible:        i.watchdog.Visible(),
		LastActivity:   i.watchdog.LastActivity(),
		TabAwayPending: i.watchdog.TabAwayPending(),
	}, nil
}
