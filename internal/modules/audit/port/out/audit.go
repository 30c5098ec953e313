package out

import (
	"context"

	"helmwatch/internal/modules/audit/domain"
)

type Store interface {
	Append(ctx context.Context, record domain.Record) (string, error)
	QueryByField(ctx context.Context, field domain.Field, value string) ([]domain.Record, error)
	Count(ctx context.Context, filter domain.Filter) (int, error)
	Recent(ctx context.Context, limit int) ([]domain.Record, error)
}
