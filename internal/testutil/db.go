// Package testutil wires an in-memory database for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/repository/mysql"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := mysql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given display name and role.
func CreateUser(t testing.TB, db *gorm.DB, name string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		Name:       name,
		Email:      name + "@example.com",
		Role:       role,
		AvatarSeed: name,
	}
	repo := &mysql.UserRepository{DB: db}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}
