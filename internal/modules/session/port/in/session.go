package in

import (
	"context"

	"helmwatch/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StartOutput, error)
	Stop(ctx context.Context) (dto.SettlementOutput, error)
	RequestStop(ctx context.Context) (dto.SettlementOutput, error)
	RecordCatch(ctx context.Context) (dto.CatchOutput, error)
	Sign(ctx context.Context, input dto.SignInput) (dto.SessionOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	History(ctx context.Context, limit int) ([]dto.SessionOutput, error)
	Logbook(ctx context.Context, sessionID string) (dto.LogbookOutput, error)
}
