package out

import (
	"context"
	"fmt"

	"helmwatch/internal/modules/session/domain"
	sessionout "helmwatch/internal/modules/session/port/out"
	"helmwatch/internal/platform/notify"
)

const reviewLookback = 50

// UnsignedReview greets the first voyage of the day with the number of
// earlier logbook entries still waiting for a countersignature.
type UnsignedReview struct {
	store    sessionout.SessionStore
	notifier notify.Notifier
}

func NewUnsignedReview(store sessionout.SessionStore, notifier notify.Notifier) sessionout.MorningReview {
	return UnsignedReview{store: store, notifier: notifier}
}

func (r UnsignedReview) MorningReview(ctx context.Context, current domain.Session) {
	sessions, err := r.store.List(ctx, reviewLookback)
	if err != nil {
		r.notifier.Send("Morning review", "Logbook unavailable, review skipped")
		return
	}
	unsigned := 0
	for _, s := range sessions {
		if s.ID == current.ID || s.IsOpen() || s.IsSigned() {
			continue
		}
		unsigned++
	}
	if unsigned == 0 {
		r.notifier.Send("Morning review", "Logbook is squared away. Fair winds.")
		return
	}
	r.notifier.Send("Morning review", fmt.Sprintf("%d voyage(s) await the captain's signature", unsigned))
}
