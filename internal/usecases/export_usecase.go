package usecases

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"logichain.backend/internal/domain/entities"
	domainRepos "logichain.backend/internal/domain/repositories"
)

// ExportUsecase writes portfolio spreadsheets for offline analysis
type ExportUsecase struct {
	contractRepo domainRepos.ContractRepository
	exportDir    string
}

// NewExportUsecase creates a new export usecase
func NewExportUsecase(contractRepo domainRepos.ContractRepository, exportDir string) *ExportUsecase {
	return &ExportUsecase{contractRepo: contractRepo, exportDir: exportDir}
}

var exportHeaders = []string{
	"Número", "Título", "Tipo", "Departamento", "Status", "Fornecedor",
	"Valor", "Valor Executado", "Início", "Fim", "Versão",
}

// ExportContracts writes the filtered portfolio to an xlsx file and
// returns its path. The file name carries a timestamp so repeated exports
// never clash.
func (uc *ExportUsecase) ExportContracts(ctx context.Context, filters entities.ListFilters) (string, error) {
	contracts, err := uc.contractRepo.List(ctx, filters, true)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contratos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", err
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return "", err
		}
	}

	for row, c := range contracts {
		values := []interface{}{
			c.ContractNumber,
			c.Title,
			c.Type,
			c.Department,
			string(c.Status),
			c.SupplierName(),
			c.ContractValue,
			c.ExecutedValue,
			formatNullDate(c.StartDate.Ptr()),
			formatNullDate(c.EndDate.Ptr()),
			c.Version,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", err
			}
		}
	}

	if err := os.MkdirAll(uc.exportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(uc.exportDir, fmt.Sprintf("contratos_%s.xlsx", time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}
