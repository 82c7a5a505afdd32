package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"logichain.backend/internal/config"
)

func stubMainDeps(t *testing.T) {
	t.Helper()

	origDotenv := loadDotenv
	origRedis := initRedis
	origOpen := openDB
	origRun := runServer
	t.Cleanup(func() {
		loadDotenv = origDotenv
		initRedis = origRedis
		openDB = origOpen
		runServer = origRun
	})

	loadDotenv = func(...string) error { return nil }
	initRedis = func(url, password string) error { return nil }
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
	}
	runServer = func(*gin.Engine, string) error { return nil }
}

func TestRunMainProcess(t *testing.T) {
	stubMainDeps(t)
	require.NoError(t, runMainProcess())
}

func TestRunMainProcessRedisFailure(t *testing.T) {
	stubMainDeps(t)
	initRedis = func(url, password string) error { return errors.New("connection refused") }

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis")
}

func TestRunMainProcessDatabaseFailure(t *testing.T) {
	stubMainDeps(t)
	openDB = func(config.DatabaseConfig) (*gorm.DB, error) { return nil, errors.New("no such host") }

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "database")
}

func TestRunMainProcessServerFailure(t *testing.T) {
	stubMainDeps(t)
	runServer = func(*gin.Engine, string) error { return errors.New("address in use") }

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "server")
}
