package bundler

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	return db
}

func TestMigrateCreatesBundleSchema(t *testing.T) {
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	for _, model := range []interface{}{
		&EntryPoint{}, &DependsOn{}, &Binding{}, &Annotation{},
	} {
		if !db.Migrator().HasTable(model) {
			t.Errorf("Expected table for %T after migration", model)
		}
	}
	// Every table in the schema is written by the bundler; in particular
	// there is no table for raw source contents.
	if db.Migrator().HasTable("source_files") {
		t.Errorf("Unexpected source_files table")
	}

	upToDate, err := CheckMigration(db)
	if err != nil {
		t.Fatalf("CheckMigration failed: %v", err)
	}
	if !upToDate {
		t.Errorf("Expected schema to be up to date after Migrate")
	}
}

func TestCheckMigrationOnFreshDatabase(t *testing.T) {
	db := openTestDB(t)

	upToDate, err := CheckMigration(db)
	if err != nil {
		t.Fatalf("CheckMigration failed: %v", err)
	}
	if upToDate {
		t.Errorf("Expected a fresh database to need migration")
	}
}
