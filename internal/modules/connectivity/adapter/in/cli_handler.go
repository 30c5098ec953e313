package in

import (
	"context"

	"helmwatch/internal/modules/connectivity/dto"
	connectivityin "helmwatch/internal/modules/connectivity/port/in"
)

type CLIHandler struct {
	usecase connectivityin.Usecase
}

func NewCLIHandler(usecase connectivityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.ConnectionOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Check(ctx context.Context) (dto.ConnectionOutput, error) {
	return h.usecase.Check(ctx)
}
