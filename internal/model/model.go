package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名称迁移单张表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "User":
		return db.AutoMigrate(&User{})
	case "Note":
		return db.AutoMigrate(&Note{})
	}
	return nil
}

// AutoMigrateAll 迁移全部业务表
func AutoMigrateAll(db *gorm.DB) error {
	for _, key := range []string{"User", "Note"} {
		if err := AutoMigrate(db, key); err != nil {
			return err
		}
	}
	return nil
}
