package usecase

import (
	"context"
	"strings"

	crewin "helmwatch/internal/modules/crew/port/in"
	"helmwatch/internal/modules/safety/dto"
	safetyin "helmwatch/internal/modules/safety/port/in"
	"helmwatch/internal/modules/safety/service"
)

type Interactor struct {
	throttler *service.Throttler
	crew      crewin.Usecase
}

func NewInteractor(throttler *service.Throttler, crew crewin.Usecase) safetyin.Usecase {
	return &Interactor{throttler: throttler, crew: crew}
}

// PerformCheck validates the target against the roster before the check
// is counted.
func (i *Interactor) PerformCheck(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error) {
	target := strings.TrimSpace(input.TargetID)
	if target != "" && i.crew != nil {
		if _, err := i.crew.Get(ctx, target); err != nil {
			return dto.CheckOutput{}, err
		}
	}
	n, advised := i.throttler.PerformCheck(target)
	return dto.CheckOutput{TargetID: target, InWindow: n, Advised: advised}, nil
}
