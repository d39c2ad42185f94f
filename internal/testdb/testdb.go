// Package testdb opens throwaway sqlite databases for package tests.
package testdb

import (
	"path/filepath"
	"testing"

	"storefront/configs"
	"storefront/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated sqlite database living in the test's temp dir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := &configs.Config{DBDriver: "sqlite", DBSource: filepath.Join(t.TempDir(), "test.db")}
	db, err := configs.ConnectionDB(cfg)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, mobile string) *entity.User {
	t.Helper()
	u := &entity.User{Mobile: mobile, FullName: "User " + mobile, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateProduct(t testing.TB, db *gorm.DB, title, price string) *entity.Product {
	t.Helper()
	p := &entity.Product{Title: title, Price: decimal.RequireFromString(price), Category: "general"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func AddToCart(t testing.TB, db *gorm.DB, userID, productID uint, qty int) *entity.CartLine {
	t.Helper()
	line := &entity.CartLine{UserID: userID, ProductID: productID, Quantity: qty}
	require.NoError(t, db.Omit("User", "Product").Create(line).Error)
	return line
}
