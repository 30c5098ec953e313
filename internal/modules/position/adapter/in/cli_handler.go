package in

import (
	"context"

	"helmwatch/internal/modules/position/dto"
	positionin "helmwatch/internal/modules/position/port/in"
)

type CLIHandler struct {
	usecase positionin.Usecase
}

func NewCLIHandler(usecase positionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Resolve(ctx context.Context) (dto.FixOutput, error) {
	return h.usecase.Resolve(ctx)
}

func (h CLIHandler) Last(ctx context.Context) (dto.FixOutput, error) {
	return h.usecase.Last(ctx)
}
