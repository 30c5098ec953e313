package server

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	auditdto "helmwatch/internal/modules/audit/dto"
	connectivitydto "helmwatch/internal/modules/connectivity/dto"
	crewdto "helmwatch/internal/modules/crew/dto"
	positiondto "helmwatch/internal/modules/position/dto"
	sessiondto "helmwatch/internal/modules/session/dto"
	telemetrydto "helmwatch/internal/modules/telemetry/dto"
)

type SessionReader interface {
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
	History(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error)
	Logbook(ctx context.Context, sessionID string) (sessiondto.LogbookOutput, error)
}

type CrewReader interface {
	List(ctx context.Context) ([]crewdto.MemberOutput, error)
	Get(ctx context.Context, id string) (crewdto.MemberOutput, error)
}

type ConnectionReader interface {
	Status(ctx context.Context) (connectivitydto.ConnectionOutput, error)
}

type VitalsReader interface {
	Vitals(ctx context.Context) (telemetrydto.VitalsOutput, error)
}

type AuditReader interface {
	List(ctx context.Context, recordType, crewID string, limit int) ([]auditdto.RecordOutput, error)
	Count(ctx context.Context, recordType, crewID string) (int, error)
}

type PositionReader interface {
	Last(ctx context.Context) (positiondto.FixOutput, error)
}

// Readers is everything the status API can show. It never changes state.
type Readers struct {
	Session    SessionReader
	Crew       CrewReader
	Connection ConnectionReader
	Vitals     VitalsReader
	Audit      AuditReader
	Position   PositionReader
}

// NewRouter creates the chi router with every read-only route.
func NewRouter(readers Readers, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := &handler{readers: readers}

	r.Get("/health", h.Health)
	r.Get("/vitals", h.Vitals)
	r.Get("/connection", h.Connection)
	r.Get("/position", h.Position)

	r.Route("/crew", func(r chi.Router) {
		r.Get("/", h.ListCrew)
		r.Get("/{id}", h.GetCrew)
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", h.SessionStatus)
		r.Get("/history", h.SessionHistory)
	})

	r.Get("/logbook/{id}", h.Logbook)

	r.Route("/audit", func(r chi.Router) {
		r.Get("/", h.ListAudit)
		r.Get("/count", h.CountAudit)
	})

	return r
}
