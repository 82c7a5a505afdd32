package usecases

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	domainRepos "logichain.backend/internal/domain/repositories"
	"logichain.backend/pkg/money"
)

// DocumentUsecase renders contract PDFs and serves them for download.
// Every render is tied to the contract version current at render time:
// the file name carries the version, so editing and re-rendering never
// overwrites an earlier document.
type DocumentUsecase struct {
	contractRepo domainRepos.ContractRepository
	eventRepo    domainRepos.ContractEventRepository
	uow          domainRepos.UnitOfWork
	pdfDir       string
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	contractRepo domainRepos.ContractRepository,
	eventRepo domainRepos.ContractEventRepository,
	uow domainRepos.UnitOfWork,
	pdfDir string,
) *DocumentUsecase {
	return &DocumentUsecase{
		contractRepo: contractRepo,
		eventRepo:    eventRepo,
		uow:          uow,
		pdfDir:       pdfDir,
	}
}

// Generate renders the contract document, stores its path on the contract
// and records the "pdf_generated" audit event. Returns the file path.
func (uc *DocumentUsecase) Generate(ctx context.Context, id uuid.UUID) (string, error) {
	contract, err := uc.contractRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uc.pdfDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(uc.pdfDir, fmt.Sprintf("%s_v%d.pdf", contract.ContractNumber, contract.Version))
	if err := renderContractPDF(contract, path); err != nil {
		return "", err
	}

	err = uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.contractRepo.UpdatePDFPath(ctx, id, path); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: id,
			EventType:  entities.EventPDFGenerated,
			EventData: map[string]interface{}{
				"pdf_path": path,
				"version":  contract.Version,
			},
		})
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// Download returns the bytes and file name of the contract's current
// document. ErrNoDocument when none was generated or the file is gone.
func (uc *DocumentUsecase) Download(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	contract, err := uc.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if contract.PDFPath == "" {
		return nil, "", domainerrors.ErrNoDocument
	}

	data, err := os.ReadFile(contract.PDFPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domainerrors.ErrNoDocument
		}
		return nil, "", err
	}
	return data, filepath.Base(contract.PDFPath), nil
}

func renderContractPDF(c *entities.Contract, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr("Contrato - LogiChain AI"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(70, 6, tr("Número: "+c.ContractNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, tr("Tipo: "+c.Type), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Status: "+string(c.Status)), "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 6, tr("Título: "+c.Title), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Departamento: "+c.Department), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	wrapped := func(text string) {
		pdf.MultiCell(0, 5, tr(text), "", "L", false)
	}

	section("Partes")
	wrapped(fmt.Sprintf("Contratante: %s | Doc: %s | Endereço: %s",
		c.Contractor.Name, c.Contractor.Doc, c.Contractor.Address))
	wrapped(fmt.Sprintf("Contratado: %s | Doc: %s | Endereço: %s",
		c.Contracted.Name, c.Contracted.Doc, c.Contracted.Address))
	pdf.Ln(2)

	section("Objeto e Escopo")
	wrapped(c.ScopeText)
	pdf.Ln(2)

	section("Cláusulas")
	wrapped(c.ClausesText)
	pdf.Ln(2)

	section("Valores e Vigência")
	pdf.CellFormat(70, 6, tr("Valor contratado: "+money.BRL(c.ContractValue)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Valor executado: "+money.BRL(c.ExecutedValue)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Início: %s | Fim: %s",
		formatNullDate(c.StartDate.Ptr()), formatNullDate(c.EndDate.Ptr()))), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	section("Assinaturas")
	pdf.Ln(10)

	contractorSign := c.Signatures.ContractorSign
	if contractorSign == "" {
		contractorSign = "Contratante"
	}
	contractedSign := c.Signatures.ContractedSign
	if contractedSign == "" {
		contractedSign = "Contratado"
	}

	y := pdf.GetY()
	pdf.Line(20, y, 80, y)
	pdf.Line(110, y, 170, y)
	pdf.Text(20, y+5, tr(contractorSign))
	pdf.Text(110, y+5, tr(contractedSign))
	if c.Signatures.Witnesses != "" {
		pdf.Text(20, y+14, tr("Testemunhas: "+c.Signatures.Witnesses))
	}

	return pdf.OutputFileAndClose(path)
}
