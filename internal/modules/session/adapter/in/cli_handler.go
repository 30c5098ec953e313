package in

import (
	"context"

	sessiondto "helmwatch/internal/modules/session/dto"
	sessionin "helmwatch/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx)
}

// Stop goes through the stop gate unless force is set.
func (h CLIHandler) Stop(ctx context.Context, force bool) (sessiondto.SettlementOutput, error) {
	if force {
		return h.usecase.Stop(ctx)
	}
	return h.usecase.RequestStop(ctx)
}

func (h CLIHandler) Catch(ctx context.Context) (sessiondto.CatchOutput, error) {
	return h.usecase.RecordCatch(ctx)
}

func (h CLIHandler) Sign(ctx context.Context, sessionID string, efficiency float64) (sessiondto.SessionOutput, error) {
	return h.usecase.Sign(ctx, sessiondto.SignInput{SessionID: sessionID, Efficiency: efficiency})
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) Logbook(ctx context.Context, sessionID string) (sessiondto.LogbookOutput, error) {
	return h.usecase.Logbook(ctx, sessionID)
}
