package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"logichain.backend/internal/domain/entities"
	"logichain.backend/internal/infrastructure/models"
)

// newTestDB opens an isolated in-memory SQLite database for one test.
// The DSN embeds the test name and a nanosecond stamp so parallel tests
// never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Contract{},
		&models.ContractEvent{},
		&models.ContractAdditive{},
		&models.ComplianceCheck{},
		&models.SupplierPerformance{},
	))
	return db
}

func testDate(t *testing.T, s string) null.Time {
	t.Helper()
	d, err := time.Parse(entities.DateLayout, s)
	require.NoError(t, err)
	return null.TimeFrom(d)
}

// newContract builds a persistable contract with sensible defaults.
// Tests mutate the returned entity before handing it to Create.
func newContract(t *testing.T, number string) *entities.Contract {
	t.Helper()
	now := time.Now()
	return &entities.Contract{
		ContractNumber: number,
		Type:           "Fornecimento",
		Title:          "Fornecimento de paletes",
		Department:     "Logística",
		Status:         entities.StatusGerado,
		Tags:           []string{"logística"},
		Contractor: entities.Party{
			Name:  "LogiChain Ltda",
			Doc:   "11.111.111/0001-11",
			Email: "juridico@logichain.com",
		},
		Contracted: entities.Party{
			Name:  "Madeireira Sul",
			Doc:   "22.222.222/0001-22",
			Email: "contato@madeireirasul.com",
		},
		ClausesText:   "Cláusula 1: o fornecedor entregará os itens no prazo acordado.",
		StartDate:     testDate(t, "2026-01-01"),
		EndDate:       testDate(t, "2026-12-31"),
		ContractValue: 120000,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
