// Package archive stores immutable snapshots of fetched price series,
// on the local filesystem or in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

// Storage defines the interface for snapshot storage backends
type Storage interface {
	// Name identifies the backend ("localfs", "s3")
	Name() string

	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// SnapshotPath builds the storage path for a coin's range snapshot.
func SnapshotPath(coinID string, from, to time.Time) string {
	return fmt.Sprintf("%s/%d-%d.csv", coinID, from.Unix(), to.Unix())
}

// EncodeSeriesCSV renders a series as a date,price CSV with a header
// row. Prices keep the 12-decimal display precision.
func EncodeSeriesCSV(series core.PriceSeries) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "price"}); err != nil {
		return nil, err
	}
	for _, p := range series {
		if err := w.Write([]string{core.FormatDate(p.Date), core.FormatPrice(p.Price)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot encodes the series and stores it under the coin's path.
// Returns the path written.
func WriteSnapshot(ctx context.Context, st Storage, coinID string, from, to time.Time, series core.PriceSeries) (string, error) {
	data, err := EncodeSeriesCSV(series)
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	path := SnapshotPath(coinID, from, to)
	if err := st.Write(ctx, path, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	return path, nil
}
