package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"logichain.backend/internal/domain/entities"
	"logichain.backend/internal/domain/errors"
	domainRepos "logichain.backend/internal/domain/repositories"
	"logichain.backend/pkg/utils"
)

// ContractUsecase coordinates contract lifecycle operations: creation,
// listing, the status state machine, versioned edits, activity capture and
// the audit trail.
type ContractUsecase struct {
	contractRepo domainRepos.ContractRepository
	eventRepo    domainRepos.ContractEventRepository
	additiveRepo domainRepos.ContractAdditiveRepository
	complianceRepo domainRepos.ComplianceRepository
	supplierRepo domainRepos.SupplierPerformanceRepository
	uow          domainRepos.UnitOfWork
}

// NewContractUsecase creates a new contract usecase
func NewContractUsecase(
	contractRepo domainRepos.ContractRepository,
	eventRepo domainRepos.ContractEventRepository,
	additiveRepo domainRepos.ContractAdditiveRepository,
	complianceRepo domainRepos.ComplianceRepository,
	supplierRepo domainRepos.SupplierPerformanceRepository,
	uow domainRepos.UnitOfWork,
) *ContractUsecase {
	return &ContractUsecase{
		contractRepo:   contractRepo,
		eventRepo:      eventRepo,
		additiveRepo:   additiveRepo,
		complianceRepo: complianceRepo,
		supplierRepo:   supplierRepo,
		uow:            uow,
	}
}

// NextContractNumber derives the next LC-<year>-NNN number from the count
// of contracts already issued this year.
func (uc *ContractUsecase) NextContractNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("LC-%d-", year)
	total, err := uc.contractRepo.CountByNumberPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LC-%d-%03d", year, total+1), nil
}

// CreateContract validates the input, assigns the contract number and
// persists the new contract together with its "created" audit event.
// Validation problems are collected and returned in full.
func (uc *ContractUsecase) CreateContract(ctx context.Context, input *entities.CreateContractInput) (*entities.Contract, error) {
	if errs := input.Validate(); errs.HasErrors() {
		return nil, errs
	}

	number := input.ContractNumber
	if number == "" {
		var err error
		number, err = uc.NextContractNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	contract := &entities.Contract{
		ID:                  utils.GenerateUUIDv7(),
		ContractNumber:      number,
		Type:                input.Type,
		Title:               input.Title,
		Department:          input.Department,
		CostCenter:          input.CostCenter,
		Status:              entities.StatusGerado,
		Tags:                input.Tags,
		Contractor:          input.Contractor,
		Contracted:          input.Contracted,
		ScopeText:           input.ScopeText,
		DeliverablesText:    input.DeliverablesText,
		SLATargets:          input.SLATargets,
		AcceptanceRules:     input.AcceptanceRules,
		ClausesText:         input.ClausesText,
		CriticalClauses:     input.CriticalClauses,
		CriticalClausesText: input.CriticalClausesText,
		MandatoryClauses:    input.MandatoryClauses,
		LegalNotes:          input.LegalNotes,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		Milestones:          input.Milestones,
		PaymentTerms:        input.PaymentTerms,
		ReajustIndex:        input.ReajustIndex,
		PenaltiesText:       input.PenaltiesText,
		PenaltiesValue:      input.PenaltiesValue,
		Signatures:          input.Signatures,
		ContractValue:       input.ContractValue,
		RequestDate:         input.RequestDate,
		SignedDate:          input.SignedDate,
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.contractRepo.Create(ctx, contract); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: contract.ID,
			EventType:  entities.EventCreated,
			EventData:  map[string]interface{}{"status": string(entities.StatusGerado)},
		})
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContract gets a contract by ID
func (uc *ContractUsecase) GetContract(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return uc.contractRepo.GetByID(ctx, id)
}

// GetContractByNumber gets a contract by its human-readable number
func (uc *ContractUsecase) GetContractByNumber(ctx context.Context, number string) (*entities.Contract, error) {
	return uc.contractRepo.GetByNumber(ctx, number)
}

// ListContracts lists contracts matching the filters, finalized included.
// Also returns the total match count so callers can paginate.
func (uc *ContractUsecase) ListContracts(ctx context.Context, filters entities.ListFilters) ([]*entities.Contract, int64, error) {
	contracts, err := uc.contractRepo.List(ctx, filters, true)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.contractRepo.Count(ctx, filters, true)
	if err != nil {
		return nil, 0, err
	}
	return contracts, total, nil
}

// KanbanContracts lists the workflow board. Finalized contracts never
// appear on the board; they are reachable only through the full listing.
func (uc *ContractUsecase) KanbanContracts(ctx context.Context) ([]*entities.Contract, error) {
	return uc.contractRepo.List(ctx, entities.ListFilters{OrderBy: "created_at DESC"}, false)
}

// UpdateStatus moves a contract through the workflow. Adjacent or
// same-state moves are always allowed; anything else requires the
// override flag. Invalid transitions mutate nothing.
func (uc *ContractUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus entities.ContractStatus, user string, override bool) error {
	contract, err := uc.contractRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !entities.CanTransition(contract.Status, newStatus, override) {
		return errors.ErrInvalidTransition
	}

	isFinalized := newStatus == entities.StatusFinalizado
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.contractRepo.UpdateStatus(ctx, id, newStatus, isFinalized); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: id,
			EventType:  entities.EventStatusChange,
			EventData: map[string]interface{}{
				"from":           string(contract.Status),
				"to":             string(newStatus),
				"user":           user,
				"admin_override": override,
			},
		})
	})
}

// EditContract applies a contractual amendment. A non-empty edit bumps
// the version by exactly one and records a single audit event carrying the
// applied changes; an edit with no recognized fields is a silent no-op.
func (uc *ContractUsecase) EditContract(ctx context.Context, id uuid.UUID, input *entities.ContractEditInput) error {
	contract, err := uc.contractRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changes := input.Changes()
	if len(changes) == 0 {
		return nil
	}

	newVersion := contract.Version + 1
	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.contractRepo.UpdateVersioned(ctx, id, changes, newVersion); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: id,
			EventType:  entities.EventEdit,
			EventData: map[string]interface{}{
				"changes":     changes,
				"new_version": newVersion,
			},
		})
	})
}

// UpdateActivity captures operational data (financials, legal notes,
// strategic scores, key dates). It never bumps the version: activity
// capture is not a contractual amendment. A non-empty update always
// records one audit event with the applied changes.
func (uc *ContractUsecase) UpdateActivity(ctx context.Context, id uuid.UUID, input *entities.ActivityUpdateInput) error {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return err
	}

	changes := input.Changes()
	if len(changes) == 0 {
		return nil
	}

	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.contractRepo.Update(ctx, id, changes); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: id,
			EventType:  entities.EventActivityUpdate,
			EventData:  map[string]interface{}{"changes": changes},
		})
	})
}

// AddAdditiveInput carries a financial amendment
type AddAdditiveInput struct {
	AdditiveDate  null.Time `json:"additiveDate"`
	AdditiveValue float64   `json:"additiveValue"`
	Reason        string    `json:"reason"`
}

// AddAdditive inserts a financial amendment, touches the parent's
// updated_at and records the "aditivo" audit event. The parent version is
// not bumped.
func (uc *ContractUsecase) AddAdditive(ctx context.Context, id uuid.UUID, input AddAdditiveInput) error {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if input.AdditiveValue <= 0 {
		return errors.BadRequest("additive value must be positive")
	}
	if !input.AdditiveDate.Valid {
		return errors.BadRequest("additive date is required")
	}

	return uc.uow.Do(ctx, func(ctx context.Context) error {
		if err := uc.additiveRepo.Create(ctx, &entities.ContractAdditive{
			ContractID:    id,
			AdditiveDate:  input.AdditiveDate,
			AdditiveValue: input.AdditiveValue,
			Reason:        input.Reason,
		}); err != nil {
			return err
		}
		if err := uc.contractRepo.Touch(ctx, id); err != nil {
			return err
		}
		return uc.eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: id,
			EventType:  entities.EventAdditive,
			EventData: map[string]interface{}{
				"date":   input.AdditiveDate.Time.Format(entities.DateLayout),
				"value":  input.AdditiveValue,
				"reason": input.Reason,
			},
		})
	})
}

// ListAdditives returns a contract's financial amendments
func (uc *ContractUsecase) ListAdditives(ctx context.Context, id uuid.UUID) ([]*entities.ContractAdditive, error) {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.additiveRepo.ListByContractID(ctx, id)
}

// UpsertCompliance stores the single compliance snapshot of a contract
func (uc *ContractUsecase) UpsertCompliance(ctx context.Context, id uuid.UUID, check *entities.ComplianceCheck) error {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return err
	}
	check.ContractID = id
	return uc.complianceRepo.Upsert(ctx, check)
}

// UpsertSupplierPerformance stores the single supplier metric row of a contract
func (uc *ContractUsecase) UpsertSupplierPerformance(ctx context.Context, id uuid.UUID, perf *entities.SupplierPerformance) error {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return err
	}
	perf.ContractID = id
	return uc.supplierRepo.Upsert(ctx, perf)
}

// ListEvents returns a contract's audit trail, newest first
func (uc *ContractUsecase) ListEvents(ctx context.Context, id uuid.UUID) ([]*entities.ContractEvent, error) {
	if _, err := uc.contractRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.eventRepo.ListByContractID(ctx, id)
}
