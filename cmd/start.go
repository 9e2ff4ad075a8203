package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-manager/core/loader"
	"farm-manager/core/logger"
	"farm-manager/core/middleware/auth"
	"farm-manager/core/middleware/rayid"
	"farm-manager/core/storage"
	"farm-manager/feature/integrity"
	"farm-manager/feature/inventory"
	"farm-manager/feature/maintenance"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "farm-manager/docs/swagger"
)

// @title Farm Manager API
// @version 1.0
// @description API for machine maintenance records and supply stock.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the farm manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		catalog, err := rt.catalog()
		if err != nil {
			return err
		}

		store, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(maintenance.NewFeature(rt.db, rt.engine(), logg))
		mgr.Register(inventory.NewFeature(rt.ledger, store, rt.cfg.Storage.Bucket,
			rt.cfg.Reconcile.SnapshotPrefix, rt.cfg.Storage.SnapshotRetain, logg))
		mgr.Register(integrity.NewFeature(integrity.Deps{
			DB:      rt.db,
			Ledger:  rt.ledger,
			Profile: rt.profile,
			Catalog: catalog,
			Client:  store,
			Bucket:  rt.cfg.Storage.Bucket,
			Prefix:  rt.cfg.Reconcile.SnapshotPrefix,
			Region:  rt.cfg.Storage.Region,
		}, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(requestLogger(logg))

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", rt.cfg.Server.Port),
				zap.String("supply_type", rt.cfg.Reconcile.SupplyType),
				zap.Bool("restock_on_delete", rt.cfg.Reconcile.RestockOnDelete),
			)
			if err := app.Listen(rt.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func requestLogger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := logger.WithRayID(base, c)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
