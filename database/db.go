// Package database opens the session database, sqlite by default or postgres
// when configured, and migrates its tables.
package database

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/partyhub/party-panel/config"
	"github.com/partyhub/party-panel/database/model"
	"github.com/partyhub/party-panel/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbType config.DatabaseType
)

func initModels() error {
	models := []any{
		&model.Session{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// Open connects to the configured database without touching the package
// handle. Tests use it to get an isolated connection.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	if cfg.IsPostgreSQL() {
		return gorm.Open(postgres.Open(cfg.GetDSN()), c)
	}

	if err := cfg.EnsureDirectoryExists(); err != nil {
		return nil, err
	}
	path := cfg.SQLitePath()
	if err := checkSQLiteFile(path); err != nil {
		return nil, err
	}

	conn, err := gorm.Open(sqlite.Open(path+"?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"), c)
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	for _, pragma := range []string{
		"PRAGMA cache_size = -16000;",
		"PRAGMA temp_store = MEMORY;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			return nil, err
		}
	}
	return conn, nil
}

// Migrate creates or updates the panel tables on conn.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(&model.Session{})
}

// InitDB opens the database, stores it as the package handle and migrates.
func InitDB(cfg *config.DatabaseConfig) error {
	conn, err := Open(cfg)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.Type, err)
	}
	db = conn
	dbType = cfg.Type
	return initModels()
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if dbType != config.DatabaseTypePostgreSQL {
		if err := Checkpoint(); err != nil {
			logger.Warningf("error executing checkpoint: %v", err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// checkSQLiteFile refuses to open an existing file that is not a sqlite
// database, so a wrong PARTY_DB_PATH never gets overwritten.
func checkSQLiteFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	ok, err := IsSQLiteDB(f)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s is not a sqlite database", path)
	}
	return nil
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint flushes the sqlite WAL into the main file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
