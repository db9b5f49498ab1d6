package bundler

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EntryPoint represents a top-level entry point in the bundle.
type EntryPoint struct {
	IdName string `gorm:"primaryKey"`
}

// DependsOn represents a dependency relationship between definitions.
type DependsOn struct {
	IdName string `gorm:"primaryKey;index"`
	Needs  string `gorm:"primaryKey;index"`
}

// Binding represents one desugared definition in the bundle. Surface is
// the JSON wire form of the term as written; Core is the desugared form
// with resugaring tags stripped; Steps counts the rewrite steps taken.
type Binding struct {
	IdName   string `gorm:"primaryKey"`
	Surface  string
	Core     string
	Steps    int
	FileName string
}

// Annotation stores metadata about definitions.
type Annotation struct {
	IdName          string `gorm:"primaryKey;index"`
	AnnotationKey   string `gorm:"primaryKey"`
	AnnotationValue string
}

// getMigrations returns the list of migrations for the bundle database.
func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202608200001",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&EntryPoint{},
					&DependsOn{},
					&Binding{},
					&Annotation{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					&Annotation{},
					&Binding{},
					&DependsOn{},
					&EntryPoint{},
				)
			},
		},
	}
}

// Migrate performs database migrations using gormigrate.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, getMigrations())
	return m.Migrate()
}

// CheckMigration checks if the database schema is up to date.
func CheckMigration(db *gorm.DB) (bool, error) {
	// Try to get the last migration ID that was applied. If the migrations
	// table doesn't exist, gormigrate will return an error, meaning no
	// migrations have run yet. Use a silent logger to avoid spurious
	// warnings on fresh databases.
	var lastMigration string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&lastMigration).Error

	if err != nil {
		return false, nil
	}

	migrations := getMigrations()
	if len(migrations) == 0 {
		return true, nil
	}

	expectedLastID := migrations[len(migrations)-1].ID
	return lastMigration == expectedLastID, nil
}
