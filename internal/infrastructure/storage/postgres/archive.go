package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"bayanihan/internal/core/id"
	"bayanihan/internal/domain/distribution"
)

// CompressionAlgo specifies the compression algorithm used.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// ArchivedVoid is a snapshot of a distribution taken right before its rows
// are deleted by a void. The ledger keeps the quantity trail; this keeps the
// full record (header, lines, notes) for later inspection.
type ArchivedVoid struct {
	ID                id.ID           `db:"id"`
	DistributionID    id.ID           `db:"distribution_id"`
	VoidedBy          *id.ID          `db:"voided_by"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	VoidedAt          time.Time       `db:"voided_at"`
}

// VoidArchive persists voided distribution snapshots.
type VoidArchive struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int // bytes
}

// Compile-time check against the engine's hook.
var _ distribution.Archiver = (*VoidArchive)(nil)

// NewVoidArchive creates a new void archive.
func NewVoidArchive(txManager *TxManager) (*VoidArchive, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &VoidArchive{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024, // 10KB
	}, nil
}

// ArchiveVoided snapshots the distribution into void_archive. Runs on the
// transaction from ctx, so the snapshot commits and rolls back with the void
// itself.
func (a *VoidArchive) ArchiveVoided(ctx context.Context, d *distribution.Distribution, actorID *id.ID) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal distribution: %w", err)
	}

	entry := ArchivedVoid{
		ID:              id.New(),
		DistributionID:  d.ID,
		VoidedBy:        actorID,
		Payload:         payload,
		CompressionAlgo: CompressionNone,
		VoidedAt:        time.Now().UTC(),
	}

	if len(payload) > a.compressThreshold {
		entry.PayloadCompressed = a.encoder.EncodeAll(payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = CompressionZstd
	}

	sql := `
		INSERT INTO void_archive (
			id, distribution_id, voided_by,
			payload, payload_compressed, compression_algo, voided_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	querier := a.txManager.GetQuerier(ctx)
	_, err = querier.Exec(ctx, sql,
		entry.ID, entry.DistributionID, entry.VoidedBy,
		entry.Payload, entry.PayloadCompressed, entry.CompressionAlgo, entry.VoidedAt,
	)
	if err != nil {
		return fmt.Errorf("insert void archive: %w", err)
	}

	return nil
}

// GetByDistribution retrieves the archived snapshot for a voided
// distribution, decompressed.
func (a *VoidArchive) GetByDistribution(ctx context.Context, distributionID id.ID) (*ArchivedVoid, error) {
	sql := `
		SELECT id, distribution_id, voided_by,
			   payload, payload_compressed, compression_algo, voided_at
		FROM void_archive
		WHERE distribution_id = $1
		ORDER BY voided_at DESC
		LIMIT 1
	`

	var e ArchivedVoid
	querier := a.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx, sql, distributionID).Scan(
		&e.ID, &e.DistributionID, &e.VoidedBy,
		&e.Payload, &e.PayloadCompressed, &e.CompressionAlgo, &e.VoidedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("query void archive: %w", err)
	}

	if e.CompressionAlgo == CompressionZstd && len(e.PayloadCompressed) > 0 {
		decompressed, err := a.decoder.DecodeAll(e.PayloadCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress payload: %w", err)
		}
		e.Payload = decompressed
		e.PayloadCompressed = nil
	}

	return &e, nil
}
