package snapshot

import "folio/internal/domain"

const DefaultBatchSize = 20

// Batch partitions a date-sorted sequence into consecutive chunks of at most
// size snapshots. An empty sequence still yields one (empty) batch.
func Batch(snapshots []domain.Snapshot, size int) []domain.SnapshotBatch {
	if size < 1 {
		size = DefaultBatchSize
	}
	if len(snapshots) == 0 {
		return []domain.SnapshotBatch{{Snapshots: []domain.Snapshot{}}}
	}

	out := make([]domain.SnapshotBatch, 0, (len(snapshots)+size-1)/size)
	for start := 0; start < len(snapshots); start += size {
		end := start + size
		if end > len(snapshots) {
			end = len(snapshots)
		}
		chunk := snapshots[start:end]
		out = append(out, domain.SnapshotBatch{
			StartDate: chunk[0].Date,
			EndDate:   chunk[len(chunk)-1].Date,
			Snapshots: chunk,
		})
	}
	return out
}

func Unbatch(batches []domain.SnapshotBatch) []domain.Snapshot {
	out := []domain.Snapshot{}
	for _, b := range batches {
		out = append(out, b.Snapshots...)
	}
	return out
}
