package quote

import (
	"context"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
)

// SnapshotStore is the stored-NAV lookup the snapshot source reads from.
type SnapshotStore interface {
	GetLatestSnapshots(ctx context.Context, fundIDs []string, asOf time.Time) (map[string]model.NavSnapshot, error)
}

// SnapshotSource values funds against NAV snapshots saved by update-nav.
// It needs no network access.
type SnapshotSource struct {
	store SnapshotStore
}

func NewSnapshotSource(store SnapshotStore) *SnapshotSource {
	return &SnapshotSource{store: store}
}

func (s *SnapshotSource) Name() string { return SourceSnapshot }

func (s *SnapshotSource) Quotes(ctx context.Context, funds []model.Fund, asOf time.Time) (map[string]model.FundQuote, error) {
	ids := make([]string, len(funds))
	for i, f := range funds {
		ids[i] = f.ID
	}

	snaps, err := s.store.GetLatestSnapshots(ctx, ids, civilDate(asOf))
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]model.FundQuote, len(snaps))
	for id, snap := range snaps {
		quotes[id] = model.FundQuote{
			FundID: id,
			NAV:    snap.NAV,
			Date:   snap.Date,
			Source: SourceSnapshot + "/" + snap.Source,
		}
	}
	return quotes, nil
}
