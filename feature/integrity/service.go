package integrity

import (
	"context"
	"sync"
	"time"

	"farm-manager/core/ledger"
	"farm-manager/core/reconcile"
	"farm-manager/core/storage"
	"farm-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Deps are the stores the checks inspect.
type Deps struct {
	DB      *gorm.DB
	Ledger  ledger.Ledger
	Profile reconcile.Profile
	Catalog []ledger.Product
	Client  storage.Client
	Bucket  string
	Prefix  string
	Region  string
}

// Report is the combined result of every check. A check that could not run
// leaves its section nil and records the reason in Errors.
type Report struct {
	Healthy bool                  `json:"healthy"`
	Catalog *checks.CatalogReport `json:"catalog,omitempty"`
	Server  *checks.ServerReport  `json:"server,omitempty"`
	Storage *checks.StorageReport `json:"storage,omitempty"`
	Errors  map[string]string     `json:"errors,omitempty"`
}

// Service handles integrity checks.
type Service struct {
	deps   Deps
	logger *zap.Logger
	sf     singleflight.Group
}

// NewService creates a new integrity service.
func NewService(deps Deps, logger *zap.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

// CheckCatalog lists profile products missing from the ledger.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.deps.Ledger, s.deps.Profile)
}

// FixCatalog seeds the missing products from the configured catalog.
func (s *Service) FixCatalog(ctx context.Context, missing []string) (fixed, unfixed []string, err error) {
	return checks.FixCatalog(ctx, s.deps.DB, s.deps.Catalog, missing)
}

// CheckServer compares the database schema with the models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.deps.DB)
}

// CheckStorage inspects the snapshot bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.deps.Client, s.deps.Bucket, s.deps.Prefix)
}

// FixStorage creates the bucket and snapshot folder when missing.
func (s *Service) FixStorage(ctx context.Context, report *checks.StorageReport) error {
	return checks.FixStorage(ctx, s.deps.Client, report, s.deps.Region, s.logger)
}

// runAllTimeout bounds a shared run once it is detached from its caller.
const runAllTimeout = time.Minute

// RunAll runs every check concurrently. Concurrent callers share one run; the
// run keeps the first caller's values but not its cancellation, so a caller
// that goes away does not fail the others.
func (s *Service) RunAll(ctx context.Context) (*Report, error) {
	v, err, shared := s.sf.Do("all", func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runAllTimeout)
		defer cancel()
		return s.runAll(runCtx), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight integrity run")
	}
	return v.(*Report), nil
}

func (s *Service) runAll(ctx context.Context) *Report {
	var (
		report     = &Report{Errors: make(map[string]string)}
		catalogErr error
		serverErr  error
		storageErr error
		wg         sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		report.Catalog, catalogErr = s.CheckCatalog(ctx)
	}()
	go func() {
		defer wg.Done()
		report.Server, serverErr = s.CheckServer()
	}()
	go func() {
		defer wg.Done()
		report.Storage, storageErr = s.CheckStorage(ctx)
	}()
	wg.Wait()

	if catalogErr != nil {
		report.Errors["catalog"] = catalogErr.Error()
	}
	if serverErr != nil {
		report.Errors["server"] = serverErr.Error()
	}
	if storageErr != nil {
		report.Errors["storage"] = storageErr.Error()
	}

	report.Healthy = len(report.Errors) == 0 &&
		report.Catalog.Status != "error" &&
		report.Server.Matched &&
		report.Storage.Status == "ok"
	return report
}
