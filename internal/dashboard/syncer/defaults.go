package syncer

import "time"

const (
	defaultBatchSize     uint64 = 500
	defaultChunkSize     uint64 = 1000
	defaultMaxReorgDepth uint64 = 100

	// 30 days at one block per minute.
	defaultBackfillSpan uint64 = 43_200

	sleepDuration     = 5 * time.Second
	idleSleepDuration = 30 * time.Second
)
