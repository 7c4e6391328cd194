package mysql

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"budgetmate/internal/model"
)

// ErrNotFound is returned by First-style lookups that match no row.
var ErrNotFound = gorm.ErrRecordNotFound

// Open connects with the given driver: "mysql" for deployments, "sqlite" for local runs.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}

// AutoMigrate creates or updates every table the API uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.Notification{},
		&model.ModerationEvent{},
		&model.Expense{},
		&model.Earning{},
		&model.Goal{},
		&model.Article{},
		&model.Job{},
	)
}
