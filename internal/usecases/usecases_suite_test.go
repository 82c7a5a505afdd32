package usecases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"logichain.backend/internal/domain/entities"
	infradb "logichain.backend/internal/infrastructure/db"
	"logichain.backend/internal/infrastructure/repositories"
	"logichain.backend/internal/usecases"
)

// testEnv wires the usecases over a real in-memory database so tests
// exercise the same repository and transaction paths production uses.
type testEnv struct {
	db         *gorm.DB
	contracts  *repositories.ContractRepository
	events     *repositories.ContractEventRepository
	additives  *repositories.ContractAdditiveRepository
	compliance *repositories.ComplianceRepository
	supplier   *repositories.SupplierPerformanceRepository

	contractUC *usecases.ContractUsecase
	kpiUC      *usecases.KPIUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infradb.Migrate(db))

	contracts := repositories.NewContractRepository(db)
	events := repositories.NewContractEventRepository(db)
	additives := repositories.NewContractAdditiveRepository(db)
	compliance := repositories.NewComplianceRepository(db)
	supplier := repositories.NewSupplierPerformanceRepository(db)
	uow := repositories.NewUnitOfWork(db)

	return &testEnv{
		db:         db,
		contracts:  contracts,
		events:     events,
		additives:  additives,
		compliance: compliance,
		supplier:   supplier,
		contractUC: usecases.NewContractUsecase(contracts, events, additives, compliance, supplier, uow),
		kpiUC:      usecases.NewKPIUsecase(contracts, additives, compliance, supplier, events),
	}
}

func daysFromToday(offset int) null.Time {
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return null.TimeFrom(day.AddDate(0, 0, offset))
}

func validCreateInput() *entities.CreateContractInput {
	return &entities.CreateContractInput{
		Type:       "Fornecimento",
		Title:      "Fornecimento de paletes",
		Department: "Logística",
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
		StartDate:     daysFromToday(-30),
		EndDate:       daysFromToday(300),
		ContractValue: 120000,
	}
}

// seedContract inserts a contract directly through the repository so
// tests can shape any field combination.
func (e *testEnv) seedContract(t *testing.T, number string, mutate func(*entities.Contract)) *entities.Contract {
	t.Helper()
	now := time.Now()
	c := &entities.Contract{
		ContractNumber: number,
		Type:           "Fornecimento",
		Title:          "Fornecimento de paletes",
		Department:     "Logística",
		Status:         entities.StatusGerado,
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
		StartDate:     daysFromToday(-30),
		EndDate:       daysFromToday(300),
		ContractValue: 100000,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if mutate != nil {
		mutate(c)
	}
	require.NoError(t, e.contracts.Create(context.Background(), c))
	return c
}
