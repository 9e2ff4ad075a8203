package config

import (
	"reflect"
	"strings"

	"farm-manager/core/database"
	"farm-manager/core/logger"
	"farm-manager/core/server"
	"farm-manager/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used for stock snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Reconcile holds configuration for the stock reconciliation engine.
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
}

// ReconcileConfig tunes how maintenance events affect the product ledger.
type ReconcileConfig struct {
	// SupplyType is the maintenance event type that consumes supplies.
	SupplyType string `mapstructure:"supply_type" default:"supply"`
	// RestockOnDelete returns the consumption of a deleted event to the ledger.
	// Off by default: deleting an event has never touched stock.
	RestockOnDelete bool `mapstructure:"restock_on_delete" default:"false"`
	// CatalogFile is an optional YAML catalog used by the seed command.
	CatalogFile string `mapstructure:"catalog_file" default:""`
	// SnapshotPrefix is the storage prefix for exported stock snapshots.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. RECONCILE_SUPPLY_TYPE -> reconcile.supply_type)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key with its
// 'default' tag so AutomaticEnv can resolve it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
