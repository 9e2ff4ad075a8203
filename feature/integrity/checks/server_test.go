package checks

import (
	"strings"
	"testing"

	"farm-manager/core/database"
	"farm-manager/core/ledger"
	"farm-manager/feature/maintenance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_MigratedSQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, ledger.Migrate(db))
	require.NoError(t, maintenance.Migrate(db))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "tables: %+v errors: %v", report.Tables, report.Errors)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Equal(t, "ok", report.Tables["products"].Status)
	assert.Equal(t, "ok", report.Tables["maintenance_events"].Status)
}

func TestCheckServerIntegrity_MissingTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, ledger.Migrate(db))

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["maintenance_events"].Status)
}

func TestCheckServerIntegrity_MySQLMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	products := columnRows()
	products.AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "auto_increment")
	products.AddRow("name", "varchar(120)", "NO", "UNI", nil, "")
	products.AddRow("category", "varchar(40)", "YES", "", nil, "")
	products.AddRow("quantity", "int(11)", "NO", "", "0", "") // Expect decimal, give int
	products.AddRow("unit", "varchar(20)", "YES", "", nil, "")
	products.AddRow("unit_price", "decimal(20,4)", "YES", "", nil, "")
	products.AddRow("updated_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `products`").WillReturnRows(products)

	events := columnRows()
	events.AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment")
	events.AddRow("machine_id", "bigint unsigned", "YES", "MUL", nil, "")
	events.AddRow("type", "varchar(40)", "YES", "MUL", nil, "")
	events.AddRow("description", "longtext", "YES", "", nil, "")
	events.AddRow("performed_at", "datetime(3)", "YES", "", nil, "")
	events.AddRow("supplies", "json", "YES", "", nil, "")
	events.AddRow("created_at", "datetime(3)", "YES", "", nil, "")
	events.AddRow("updated_at", "datetime(3)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `maintenance_events`").WillReturnRows(events)

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "mysql", report.Driver)

	tbl := report.Tables["products"]
	assert.Equal(t, "error", tbl.Status)
	assert.Equal(t, []string{"seed_quantity"}, tbl.MissingColumns)
	require.Len(t, tbl.TypeMismatches, 1)
	assert.True(t, strings.HasPrefix(tbl.TypeMismatches[0], "quantity: expected decimal(20,4), got int(11)"))

	assert.Equal(t, "ok", report.Tables["maintenance_events"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckServerIntegrity_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `products`").WillReturnError(assert.AnError)
	mock.ExpectQuery("SHOW COLUMNS FROM `maintenance_events`").WillReturnRows(columnRows())

	report, err := CheckServerIntegrity(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "products")
}

func TestParseGormTags(t *testing.T) {
	col := parseGormColumn("column:id;primaryKey")
	assert.Equal(t, "id", col)

	col2 := parseGormColumn("primaryKey;column:name;type:varchar(120)")
	assert.Equal(t, "name", col2)

	typ := parseGormType("column:quantity;type:decimal(20,4);not null")
	assert.Equal(t, "decimal(20,4)", typ)

	typ2 := parseGormType("column:id")
	assert.Equal(t, "", typ2)
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, typeMatches("varchar(40)", "varchar(40)"))
	assert.True(t, typeMatches("text", "longtext"))
	assert.False(t, typeMatches("decimal(20,4)", "double"))
}
