package in

import (
	"context"

	"helmwatch/internal/modules/audit/dto"
	auditin "helmwatch/internal/modules/audit/port/in"
)

type CLIHandler struct {
	usecase auditin.Usecase
}

func NewCLIHandler(usecase auditin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, recordType, crewID string, limit int) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx, dto.ListInput{Type: recordType, CrewID: crewID, Limit: limit})
}

func (h CLIHandler) Count(ctx context.Context, recordType, crewID string) (int, error) {
	return h.usecase.Count(ctx, dto.CountInput{Type: recordType, CrewID: crewID})
}
