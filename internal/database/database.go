package database

import (
	"context"
	"fmt"
	"time"

	"real-estate-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormDB wraps the GORM connection to the catalogue database. The identity
// store is separate and is reached through internal/repository.UserRepository.
type GormDB struct {
	db *gorm.DB
}

// NewMySQL connects to MySQL.
func NewMySQL(host, port, user, password, dbname string) (*GormDB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &GormDB{db: db}, nil
}

// NewSQLite opens a file-backed or in-memory SQLite database. Used for local
// development and tests.
func NewSQLite(path string) (*GormDB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &GormDB{db: db}, nil
}

// NewFromDB wraps an existing gorm.DB instance.
func NewFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// DB returns the underlying gorm.DB instance.
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate.
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Category{},
		&models.Customer{},
		&models.Property{},
		&models.Sale{},
		&models.Rental{},
		&models.Rating{},
		&models.Comment{},
		&models.Favorite{},
		&models.Testimonial{},
		&models.DeleteLog{},
	)
}

// TxHandle is an explicit unit of work. Handlers obtain one per operation,
// pass it to every repository call that must commit together, and finish with
// exactly one Commit or Rollback.
type TxHandle struct {
	tx   *gorm.DB
	done bool
}

// Begin opens a transaction bound to ctx. Cancelling ctx aborts in-flight
// statements and makes Commit fail, which the caller turns into a rollback.
func (gdb *GormDB) Begin(ctx context.Context) (*TxHandle, error) {
	tx := gdb.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("beginning transaction: %w", tx.Error)
	}
	return &TxHandle{tx: tx}, nil
}

// Tx exposes the transactional gorm handle for repository rebinding.
func (t *TxHandle) Tx() *gorm.DB {
	return t.tx
}

// Commit makes all staged mutations durable.
func (t *TxHandle) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards all staged mutations. Safe to call after Commit; it
// becomes a no-op, so callers can defer it.
func (t *TxHandle) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.tx.Rollback()
}
