package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"farm-manager/core/ledger"
	"farm-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoSnapshot is returned when the bucket holds no stock snapshot yet.
var ErrNoSnapshot = errors.New("no stock snapshot found")

// StockSnapshot is the document written to storage by ExportSnapshot.
type StockSnapshot struct {
	TakenAt    time.Time        `json:"taken_at"`
	Products   []ledger.Product `json:"products"`
	TotalValue decimal.Decimal  `json:"total_value"`
}

// SnapshotInfo describes a stored snapshot.
type SnapshotInfo struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	Products int    `json:"products"`
	Pruned   int    `json:"pruned"`
}

// Service exposes the product ledger and its snapshots.
type Service struct {
	ledger ledger.Ledger
	client storage.Client
	bucket string
	prefix string
	retain int
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new inventory service. retain is the number of
// snapshots kept after an export; zero keeps all of them.
func NewService(l ledger.Ledger, client storage.Client, bucket, prefix string, retain int, logger *zap.Logger) *Service {
	return &Service{
		ledger: l,
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		retain: retain,
		logger: logger,
		now:    time.Now,
	}
}

// List returns every product.
func (s *Service) List(ctx context.Context) ([]ledger.Product, error) {
	return s.ledger.List(ctx)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, name string) (*ledger.Product, error) {
	return s.ledger.Get(ctx, name)
}

// Adjust books a manual stock movement: a delivery (positive) or a write-off
// (negative). The drift audit baseline moves with it.
func (s *Service) Adjust(ctx context.Context, name string, delta decimal.Decimal) (*ledger.Product, error) {
	qty, err := s.ledger.Receive(ctx, name, delta)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Manual stock adjustment",
		zap.String("product", name),
		zap.String("delta", delta.String()),
		zap.String("quantity", qty.String()),
	)
	return s.ledger.Get(ctx, name)
}

// ExportSnapshot writes the current stock as JSON to
// <prefix>/stock_<unix nanos>.json and prunes old snapshots beyond the retain count.
func (s *Service) ExportSnapshot(ctx context.Context) (*SnapshotInfo, error) {
	products, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := StockSnapshot{TakenAt: s.now().UTC(), Products: products, TotalValue: decimal.Zero}
	for _, p := range products {
		snap.TotalValue = snap.TotalValue.Add(p.StockValue())
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := s.objectKey(snap.TakenAt)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot %s: %w", key, err)
	}

	info := &SnapshotInfo{Key: key, Size: int64(len(data)), Products: len(products)}
	s.logger.Info("Stock snapshot exported", zap.String("key", key), zap.Int("products", len(products)))

	if s.retain > 0 {
		pruned, err := s.prune(ctx)
		if err != nil {
			// Stale snapshots are picked up again by the next export.
			s.logger.Warn("Failed to prune old snapshots", zap.Error(err))
		}
		info.Pruned = pruned
	}
	return info, nil
}

// Snapshots lists stored snapshot keys, newest first.
func (s *Service) Snapshots(ctx context.Context) ([]string, error) {
	prefix := s.prefix
	if prefix != "" {
		prefix += "/"
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		if isSnapshotKey(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}
	// stock_<timestamp>.json sorts by time once the timestamps share a width.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] > keys[j]
	})
	return keys, nil
}

// LatestSnapshot downloads the newest snapshot.
func (s *Service) LatestSnapshot(ctx context.Context) (*StockSnapshot, error) {
	keys, err := s.Snapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, ErrNoSnapshot
	}

	obj, err := s.client.GetObject(ctx, s.bucket, keys[0], minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot %s: %w", keys[0], err)
	}
	defer obj.Close()

	var snap StockSnapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", keys[0], err)
	}
	return &snap, nil
}

func (s *Service) prune(ctx context.Context) (int, error) {
	keys, err := s.Snapshots(ctx)
	if err != nil {
		return 0, err
	}
	if len(keys) <= s.retain {
		return 0, nil
	}
	stale := keys[s.retain:]

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, key := range stale {
		objectsCh <- minio.ObjectInfo{Key: key}
	}
	close(objectsCh)

	var failures []string
	for rerr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", rerr.ObjectName, rerr.Err))
		}
	}
	if len(failures) > 0 {
		return len(stale) - len(failures), fmt.Errorf("prune had %d errors: %v", len(failures), failures)
	}

	s.logger.Debug("Pruned old snapshots", zap.Int("count", len(stale)))
	return len(stale), nil
}

func (s *Service) objectKey(t time.Time) string {
	return path.Join(s.prefix, fmt.Sprintf("stock_%d.json", t.UnixNano()))
}

func isSnapshotKey(key string) bool {
	base := path.Base(key)
	return strings.HasPrefix(base, "stock_") && strings.HasSuffix(base, ".json")
}
