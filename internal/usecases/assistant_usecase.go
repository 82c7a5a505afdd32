package usecases

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	domainRepos "logichain.backend/internal/domain/repositories"
	"logichain.backend/pkg/logger"
	"logichain.backend/pkg/money"
	"logichain.backend/pkg/redis"
)

// Assistant query modes
const (
	ModeGeneral  = "Consulta Geral"
	ModeSummary  = "Resumo do Contrato"
	ModeRisk     = "Análise de Risco"
)

// HighRiskThreshold is the risk score at and above which a contract is
// flagged by the risk query.
const HighRiskThreshold = 70.0

var (
	contractNumberRe = regexp.MustCompile(`(?i)LC-\d{4}-\d{3}`)
	daysRe           = regexp.MustCompile(`(\d{1,3})\s*dias`)
)

// AssistantUsecase answers portfolio questions through a deterministic
// query router. Questions are matched against a fixed set of intents; no
// free-form query ever reaches the database.
type AssistantUsecase struct {
	contractRepo   domainRepos.ContractRepository
	complianceRepo domainRepos.ComplianceRepository
	conversations  *redis.ConversationStore
}

// NewAssistantUsecase creates a new assistant usecase
func NewAssistantUsecase(
	contractRepo domainRepos.ContractRepository,
	complianceRepo domainRepos.ComplianceRepository,
	conversations *redis.ConversationStore,
) *AssistantUsecase {
	return &AssistantUsecase{
		contractRepo:   contractRepo,
		complianceRepo: complianceRepo,
		conversations:  conversations,
	}
}

// Ask routes the question to the matching intent and returns the answer
// text. When a session ID is given the exchange is appended to the
// conversation history; history failures never fail the answer.
func (uc *AssistantUsecase) Ask(ctx context.Context, sessionID, question, mode string) (string, error) {
	answer, err := uc.answer(ctx, question, mode)
	if err != nil {
		return "", err
	}

	if sessionID != "" && uc.conversations != nil {
		uc.record(ctx, sessionID, &redis.Message{Role: "user", Mode: mode, Content: question})
		uc.record(ctx, sessionID, &redis.Message{Role: "assistant", Mode: mode, Content: answer})
	}
	return answer, nil
}

// History returns the recorded conversation of a session, oldest first
func (uc *AssistantUsecase) History(ctx context.Context, sessionID string) ([]*redis.Message, error) {
	if uc.conversations == nil {
		return nil, nil
	}
	return uc.conversations.History(ctx, sessionID)
}

// ClearHistory drops the conversation of a session
func (uc *AssistantUsecase) ClearHistory(ctx context.Context, sessionID string) error {
	if uc.conversations == nil {
		return nil
	}
	return uc.conversations.Clear(ctx, sessionID)
}

func (uc *AssistantUsecase) record(ctx context.Context, sessionID string, msg *redis.Message) {
	if err := uc.conversations.Append(ctx, sessionID, msg); err != nil {
		logger.Warn(ctx, "failed to record conversation message", zap.Error(err))
	}
}

func (uc *AssistantUsecase) answer(ctx context.Context, question, mode string) (string, error) {
	q := strings.TrimSpace(question)
	qLower := strings.ToLower(q)

	if q == "" {
		return "Faça uma pergunta sobre os contratos.", nil
	}

	numberMatch := contractNumberRe.FindString(q)
	if mode == ModeSummary || numberMatch != "" {
		if numberMatch == "" {
			return "No modo Resumo do Contrato, informe o número (ex: LC-2026-001).", nil
		}
		return uc.summary(ctx, strings.ToUpper(numberMatch))
	}

	contracts, err := uc.contractRepo.List(ctx, entities.ListFilters{OrderBy: "created_at DESC"}, true)
	if err != nil {
		return "", err
	}
	if len(contracts) == 0 {
		return "Não há contratos cadastrados no momento.", nil
	}

	switch {
	case strings.Contains(qLower, "vencem") || strings.Contains(qLower, "vencer"):
		return uc.expiring(q, contracts), nil
	case strings.Contains(qLower, "risco alto") || mode == ModeRisk:
		return uc.highRisk(ctx, contracts)
	case strings.Contains(qLower, "total contratado por fornecedor") || strings.Contains(qLower, "total por fornecedor"):
		return supplierTotals(contracts), nil
	case strings.Contains(qLower, "em vigor") && strings.Contains(qLower, "listar"):
		return listActive(contracts), nil
	}

	return "Não consegui mapear sua pergunta para uma consulta segura. " +
		"Tente usar formatos como: 'Quais contratos vencem nos próximos 45 dias?' " +
		"ou informe o número do contrato (ex: LC-2026-001).", nil
}

func (uc *AssistantUsecase) summary(ctx context.Context, number string) (string, error) {
	contract, err := uc.contractRepo.GetByNumber(ctx, number)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return fmt.Sprintf("Não encontrei o contrato %s. Verifique o número informado.", number), nil
		}
		return "", err
	}

	scope := contract.ScopeText
	if strings.TrimSpace(scope) == "" {
		scope = "Sem descrição"
	}
	return fmt.Sprintf(
		"Resumo do contrato %s:\n"+
			"- Título: %s\n"+
			"- Tipo: %s\n"+
			"- Status: %s\n"+
			"- Departamento: %s\n"+
			"- Fornecedor/Contratado: %s\n"+
			"- Vigência: %s até %s\n"+
			"- Valor: %s\n"+
			"- Escopo: %s",
		contract.ContractNumber,
		contract.Title,
		contract.Type,
		contract.Status,
		contract.Department,
		contract.SupplierName(),
		formatNullDate(contract.StartDate.Ptr()),
		formatNullDate(contract.EndDate.Ptr()),
		money.BRL(contract.ContractValue),
		scope,
	), nil
}

func (uc *AssistantUsecase) expiring(question string, contracts []*entities.Contract) string {
	days := extractDays(question, 45)
	today := startOfToday()
	limit := today.AddDate(0, 0, days)

	var rows []*entities.Contract
	for _, c := range contracts {
		if !c.EndDate.Valid {
			continue
		}
		end := c.EndDate.Time
		if !end.Before(today) && !end.After(limit) {
			rows = append(rows, c)
		}
	}
	if len(rows) == 0 {
		return fmt.Sprintf("Nenhum contrato vence nos próximos %d dias.", days)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EndDate.Time.Before(rows[j].EndDate.Time)
	})
	lines := []string{fmt.Sprintf("Contratos que vencem nos próximos %d dias:", days)}
	for _, c := range rows {
		lines = append(lines, fmt.Sprintf("- %s | %s | vence em %s",
			c.ContractNumber, c.Title, c.EndDate.Time.Format(entities.DateLayout)))
	}
	return strings.Join(lines, "\n")
}

func (uc *AssistantUsecase) highRisk(ctx context.Context, contracts []*entities.Contract) (string, error) {
	type riskyContract struct {
		contract *entities.Contract
		check    *entities.ComplianceCheck
	}

	var risky []riskyContract
	for _, c := range contracts {
		check, err := uc.complianceRepo.GetByContractID(ctx, c.ID)
		if err != nil {
			if domainerrors.IsNotFound(err) {
				continue
			}
			return "", err
		}
		if check.RiskScore >= HighRiskThreshold {
			risky = append(risky, riskyContract{contract: c, check: check})
		}
	}
	if len(risky) == 0 {
		return "Não encontrei contratos com risco alto (score >= 70).", nil
	}

	lines := []string{"Contratos em vigor com risco alto:"}
	for _, r := range risky {
		if r.contract.Status == entities.StatusEmVigor {
			lines = append(lines, fmt.Sprintf("- %s | %s | risco %g | não conformidades %d",
				r.contract.ContractNumber, r.contract.Title, r.check.RiskScore, r.check.NonconformitiesCount))
		}
	}
	if len(lines) == 1 {
		return "Existem contratos com risco alto, mas nenhum está com status 'Em vigor'.", nil
	}
	return strings.Join(lines, "\n"), nil
}

func supplierTotals(contracts []*entities.Contract) string {
	totals := map[string]float64{}
	for _, c := range contracts {
		name := strings.TrimSpace(c.Contracted.Name)
		if name == "" {
			name = "Não informado"
		}
		totals[name] += c.ContractValue
	}

	suppliers := make([]string, 0, len(totals))
	for name := range totals {
		suppliers = append(suppliers, name)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if totals[suppliers[i]] != totals[suppliers[j]] {
			return totals[suppliers[i]] > totals[suppliers[j]]
		}
		return suppliers[i] < suppliers[j]
	})

	lines := []string{"Total contratado por fornecedor:"}
	for _, name := range suppliers {
		lines = append(lines, fmt.Sprintf("- %s: %s", name, money.BRL(totals[name])))
	}
	return strings.Join(lines, "\n")
}

func listActive(contracts []*entities.Contract) string {
	lines := []string{"Contratos em vigor:"}
	for _, c := range contracts {
		if c.Status == entities.StatusEmVigor {
			lines = append(lines, fmt.Sprintf("- %s | %s | %s",
				c.ContractNumber, c.Title, money.BRL(c.ContractValue)))
		}
	}
	if len(lines) == 1 {
		return "Não há contratos em vigor."
	}
	return strings.Join(lines, "\n")
}

func extractDays(question string, fallback int) int {
	match := daysRe.FindStringSubmatch(strings.ToLower(question))
	if match == nil {
		return fallback
	}
	days, err := strconv.Atoi(match[1])
	if err != nil {
		return fallback
	}
	return days
}

func formatNullDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(entities.DateLayout)
}
