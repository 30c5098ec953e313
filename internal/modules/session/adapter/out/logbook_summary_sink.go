package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"helmwatch/internal/modules/session/domain"
	sessionout "helmwatch/internal/modules/session/port/out"
	"helmwatch/internal/platform/digest"
	apperrors "helmwatch/internal/platform/errors"
	"helmwatch/internal/platform/markdown"
	"helmwatch/internal/platform/slug"
)

const (
	signatureBlock = "signature"
	timestampFmt   = "2006-01-02T15:04:05Z07:00"
)

// LogbookSummarySink writes one markdown entry per settled session under
// logbook/YYYY/MM/DD and stamps the signature into it later. Each entry
// carries a seal over its figures; the countersignature says whether the
// figures still match the ship's record.
type LogbookSummarySink struct {
	dir string
}

// NewLogbookSummarySink returns the concrete sink, which is also the
// logbook reader.
func NewLogbookSummarySink(dir string) *LogbookSummarySink {
	return &LogbookSummarySink{dir: dir}
}

var (
	_ sessionout.SummarySink   = (*LogbookSummarySink)(nil)
	_ sessionout.LogbookReader = (*LogbookSummarySink)(nil)
)

func (s *LogbookSummarySink) Path(sessionID string, startedAt time.Time) string {
	return filepath.Join(
		s.dir,
		startedAt.Format("2006"), startedAt.Format("01"), startedAt.Format("02"),
		fmt.Sprintf("%s-voyage-%s.md", startedAt.Format("150405"), slug.Make(sessionID)),
	)
}

func (s *LogbookSummarySink) Deliver(_ context.Context, settlement domain.Settlement) (string, error) {
	path := s.Path(settlement.SessionID, settlement.StartedAt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create logbook dir: %w", err)
	}
	doc := markdown.Document{
		Meta: map[string]any{
			"schema_version":   domain.SchemaVersion,
			"session_id":       settlement.SessionID,
			"started_at":       settlement.StartedAt.Format(timestampFmt),
			"ended_at":         settlement.EndedAt.Format(timestampFmt),
			"duration_seconds": settlement.DurationSeconds,
			"earnings":         settlement.Earnings,
			"items_caught":     settlement.ItemsCaught,
			"overtime":         settlement.Overtime,
			"seal":             seal(settlement.SessionID, settlement.StartedAt, settlement.EndedAt, settlement.ItemsCaught, settlement.Earnings),
		},
		Body: fmt.Sprintf(
			"# Voyage %s\n\n| | |\n|---|---|\n| Time at the oars | %s |\n| Catch | %d |\n| Earnings | %.2f |\n| Overtime | %s |\n\n## Signature\n\n",
			settlement.SessionID,
			(time.Duration(settlement.DurationSeconds) * time.Second).String(),
			settlement.ItemsCaught,
			settlement.Earnings,
			yesNo(settlement.Overtime),
		),
	}
	doc.SetBlock(signatureBlock, "_Unsigned_")
	if err := writeDocument(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// Countersign records the signature in the entry, writing the entry
// first if the settlement never reached the logbook.
func (s *LogbookSummarySink) Countersign(ctx context.Context, session domain.Session) error {
	path := s.Path(session.ID, session.StartedAt)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		_, settlement := domain.Settle(session, session.EndedAt, 0)
		settlement.Earnings = session.Earnings
		if _, err := s.Deliver(ctx, settlement); err != nil {
			return err
		}
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read logbook entry: %w", err)
	}
	doc, err := markdown.Parse(string(raw))
	if err != nil {
		return err
	}
	recorded, _ := doc.Meta["seal"].(string)
	intact := recorded == seal(session.ID, session.StartedAt, session.EndedAt, session.ItemsCaught, session.Earnings)

	doc.Meta["signed_at"] = session.SignedAt.Format(timestampFmt)
	doc.Meta["efficiency"] = session.Efficiency
	doc.Meta["seal_intact"] = intact
	signature := fmt.Sprintf("Signed %s with efficiency %.0f%%", session.SignedAt.Format("2006-01-02 15:04"), session.Efficiency)
	if !intact {
		signature += "\n\n**Seal broken:** the figures above differ from the ship's record."
	}
	doc.SetBlock(signatureBlock, signature)
	return writeDocument(path, doc)
}

// Read returns the raw markdown entry for a closed session.
func (s *LogbookSummarySink) Read(_ context.Context, session domain.Session) (string, error) {
	raw, err := os.ReadFile(s.Path(session.ID, session.StartedAt))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: no logbook entry for session %s", apperrors.ErrNotFound, session.ID)
	}
	if err != nil {
		return "", fmt.Errorf("read logbook entry: %w", err)
	}
	return string(raw), nil
}

func writeDocument(path string, doc markdown.Document) error {
	rendered, err := doc.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write logbook entry: %w", err)
	}
	return nil
}

// seal covers the figures the store keeps, at the store's millisecond
// precision, so a settlement and its later reload seal identically.
func seal(sessionID string, startedAt, endedAt time.Time, itemsCaught int, earnings float64) string {
	return digest.Seal(digest.LogbookKey,
		sessionID,
		strconv.FormatInt(startedAt.UnixMilli(), 10),
		strconv.FormatInt(endedAt.UnixMilli(), 10),
		strconv.Itoa(itemsCaught),
		strconv.FormatFloat(earnings, 'f', 2, 64),
	)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
