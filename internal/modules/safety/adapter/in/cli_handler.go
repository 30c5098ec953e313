package in

import (
	"context"

	"helmwatch/internal/modules/safety/dto"
	safetyin "helmwatch/internal/modules/safety/port/in"
)

type CLIHandler struct {
	usecase safetyin.Usecase
}

func NewCLIHandler(usecase safetyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, targetID string) (dto.CheckOutput, error) {
	return h.usecase.PerformCheck(ctx, dto.CheckInput{TargetID: targetID})
}
