// Package testutil 测试辅助：内存 sqlite 数据库
package testutil

import (
	"testing"

	"social-system/config"
	"social-system/internal/model"
	dbPkg "social-system/pkg/db"

	"gorm.io/gorm"
)

// OpenDB 打开一个已完成迁移的内存数据库，测试结束时自动关闭
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := dbPkg.Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = dbPkg.Close(gdb) })

	if err := dbPkg.AutoMigrate(gdb, model.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}
