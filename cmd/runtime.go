package cmd

import (
	"fmt"

	"farm-manager/core/config"
	"farm-manager/core/database"
	"farm-manager/core/ledger"
	"farm-manager/core/logger"
	"farm-manager/core/reconcile"
	"farm-manager/feature/maintenance"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs: configuration, logger and the
// migrated stock database.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	ledger  *ledger.GormLedger
	profile reconcile.Profile
}

func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logg = logg.With(zap.String("farm", cfg.Server.Farm))

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := ledger.Migrate(db); err != nil {
		return nil, err
	}
	if err := maintenance.Migrate(db); err != nil {
		return nil, err
	}

	profile := reconcile.DefaultProfile()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid consumption profile: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		ledger:  ledger.NewGormLedger(db),
		profile: profile,
	}, nil
}

func (r *runtime) engine() *reconcile.Engine {
	return reconcile.NewEngine(r.ledger, r.profile, r.logger, reconcile.Options{
		SupplyType:      r.cfg.Reconcile.SupplyType,
		RestockOnDelete: r.cfg.Reconcile.RestockOnDelete,
	})
}

func (r *runtime) catalog() ([]ledger.Product, error) {
	return ledger.LoadCatalog(r.cfg.Reconcile.CatalogFile)
}
