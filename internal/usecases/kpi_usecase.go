package usecases

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"logichain.backend/internal/domain/entities"
	domainRepos "logichain.backend/internal/domain/repositories"
)

// DefaultExpiringDays is the dashboard's default look-ahead window
const DefaultExpiringDays = 30

var litigationRe = regexp.MustCompile(`(?i)lit[íi]gio`)

// FinancialKPIs aggregates money indicators
type FinancialKPIs struct {
	ValorTotalContratado     float64      `json:"valor_total_contratado"`
	ExecutadoVsContratadoPct null.Float64 `json:"executado_vs_contratado_pct"`
	EconomiaObtida           float64      `json:"economia_obtida"`
	CustoMedioContrato       null.Float64 `json:"custo_medio_contrato"`
	MultasTotal              float64      `json:"multas_total"`
	CustosAdicionaisAditivos float64      `json:"custos_adicionais_aditivos"`
	VariacaoPrecoPct         null.Float64 `json:"variacao_preco_pct"`
	ROIMedio                 null.Float64 `json:"roi_medio"`
}

// TermKPIs aggregates deadline and execution indicators
type TermKPIs struct {
	PrazoMedioVigenciaDias  null.Float64 `json:"prazo_medio_vigencia_dias"`
	PctProximosVencimento   null.Float64 `json:"pct_proximos_vencimento"`
	AtrasoMedioExecucaoDias null.Float64 `json:"atraso_medio_execucao_dias"`
	LeadTimeContratacaoDias null.Float64 `json:"lead_time_contratacao_dias"`
	TaxaRenovacao           null.Float64 `json:"taxa_renovacao"`
	VencidosSemRenovacao    int          `json:"vencidos_sem_renovacao"`
	CumprimentoCronogramaPct null.Float64 `json:"cumprimento_cronograma_pct"`
}

// ComplianceKPIs aggregates compliance and risk indicators. Every field is
// null when no compliance row exists in scope.
type ComplianceKPIs struct {
	PctClausulasObrigatorias   null.Float64 `json:"pct_clausulas_obrigatorias"`
	ForaPadraoJuridico         null.Int     `json:"fora_padrao_juridico"`
	SemGarantiaOuSeguro        null.Int     `json:"sem_garantia_ou_seguro"`
	IndiceRisco                null.Float64 `json:"indice_risco"`
	ConformidadeRegulatoriaPct null.Float64 `json:"conformidade_regulatoria_pct"`
	AuditadosPct               null.Float64 `json:"auditados_pct"`
	NaoConformidades           null.Int     `json:"nao_conformidades"`
}

// OperationalKPIs aggregates volume and distribution indicators
type OperationalKPIs struct {
	TotalAtivos              int                `json:"total_ativos"`
	ContratosPorTipo         map[string]int     `json:"contratos_por_tipo"`
	ContratosPorFornecedor   map[string]int     `json:"contratos_por_fornecedor"`
	ContratosPorDepartamento map[string]int     `json:"contratos_por_departamento"`
	VolumeAditivosMedio      null.Float64       `json:"volume_aditivos_medio"`
	FrequenciaAlteracoes     int                `json:"frequencia_alteracoes"`
	DigitalizadosVsFisicosPct null.Float64      `json:"digitalizados_vs_fisicos_pct"`
}

// SupplierKPIs aggregates supplier delivery indicators. Every field is null
// when no supplier performance row exists in scope.
type SupplierKPIs struct {
	SLACumpridoPct             null.Float64 `json:"sla_cumprido_pct"`
	IndiceFalhasEntrega        null.Float64 `json:"indice_falhas_entrega"`
	PontualidadeEntrega        null.Float64 `json:"pontualidade_entrega"`
	QualidadeServico           null.Float64 `json:"qualidade_servico"`
	TaxaSubstituicaoFornecedor null.Float64 `json:"taxa_substituicao_fornecedor"`
	SatisfacaoFornecedor       null.Float64 `json:"satisfacao_fornecedor"`
}

// LegalKPIs aggregates legal exposure indicators
type LegalKPIs struct {
	LitigiosRelacionados      int          `json:"litigios_relacionados"`
	ComClausulasCriticas      int          `json:"com_clausulas_criticas"`
	TempoMedioAnaliseJuridica null.Float64 `json:"tempo_medio_analise_juridica"`
	TempoMedioAprovacao       null.Float64 `json:"tempo_medio_aprovacao"`
	RescindidosAntecipadamente int         `json:"rescindidos_antecipadamente"`
	ExposicaoJuridicaEstimada float64      `json:"exposicao_juridica_estimada"`
}

// LifecycleKPIs aggregates process timing indicators
type LifecycleKPIs struct {
	TempoCriacaoAprovacaoAssinatura null.Float64 `json:"tempo_criacao_aprovacao_assinatura"`
	TempoMedioAssinatura            null.Float64 `json:"tempo_medio_assinatura"`
	PctAssinadosDigitalmente        null.Float64 `json:"pct_assinados_digitalmente"`
	TempoMedioArquivamento          null.Float64 `json:"tempo_medio_arquivamento"`
	TempoRenegociacao               null.Float64 `json:"tempo_renegociacao"`
	EficienciaFluxoAprovacao        null.Float64 `json:"eficiencia_fluxo_aprovacao"`
}

// StrategicKPIs aggregates portfolio alignment indicators
type StrategicKPIs struct {
	PctAlinhadosPlanejamento    null.Float64 `json:"pct_alinhados_planejamento"`
	ContribuicaoReceita         float64      `json:"contribuicao_receita"`
	ContratosCriticosOperacao   null.Float64 `json:"contratos_criticos_operacao"`
	DependenciaFornecedoresChave float64     `json:"dependencia_fornecedores_chave"`
	DiversificacaoFornecedores  float64      `json:"diversificacao_fornecedores"`
}

// AdvancedKPIs aggregates maturity and predictive indicators
type AdvancedKPIs struct {
	ScoreMaturidade         float64 `json:"score_maturidade"`
	IndiceGovernanca        float64 `json:"indice_governanca"`
	PctAutomacao            float64 `json:"pct_automacao"`
	ProbInadimplencia       float64 `json:"prob_inadimplencia"`
	RiscoFinanceiroAgregado float64 `json:"risco_financeiro_agregado"`
	RupturaPreditivaBaseline float64 `json:"ruptura_preditiva_baseline"`
}

// KPISections groups the nine dashboard sections
type KPISections struct {
	Financeiro     FinancialKPIs   `json:"financeiro"`
	PrazoExecucao  TermKPIs        `json:"prazo_execucao"`
	ComplianceRisco ComplianceKPIs `json:"compliance_risco"`
	Operacionais   OperationalKPIs `json:"operacionais"`
	Fornecedor     SupplierKPIs    `json:"fornecedor"`
	Juridicos      LegalKPIs       `json:"juridicos"`
	CLM            LifecycleKPIs   `json:"clm"`
	Estrategicos   StrategicKPIs   `json:"estrategicos"`
	Avancados      AdvancedKPIs    `json:"avancados"`
}

// KPICharts carries the distributions rendered by the dashboard
type KPICharts struct {
	StatusDist          map[string]int     `json:"status_dist"`
	TipoDist            map[string]int     `json:"tipo_dist"`
	ValorPorDepartamento map[string]float64 `json:"valor_por_departamento"`
}

// KPIReport is the full dashboard payload. HasData is false and both
// pointers nil when the scope contains no contracts.
type KPIReport struct {
	HasData  bool         `json:"has_data"`
	Sections *KPISections `json:"sections"`
	Charts   *KPICharts   `json:"charts"`
}

// KPIUsecase computes the dashboard report from full table snapshots
type KPIUsecase struct {
	contractRepo   domainRepos.ContractRepository
	additiveRepo   domainRepos.ContractAdditiveRepository
	complianceRepo domainRepos.ComplianceRepository
	supplierRepo   domainRepos.SupplierPerformanceRepository
	eventRepo      domainRepos.ContractEventRepository
}

// NewKPIUsecase creates a new KPI usecase
func NewKPIUsecase(
	contractRepo domainRepos.ContractRepository,
	additiveRepo domainRepos.ContractAdditiveRepository,
	complianceRepo domainRepos.ComplianceRepository,
	supplierRepo domainRepos.SupplierPerformanceRepository,
	eventRepo domainRepos.ContractEventRepository,
) *KPIUsecase {
	return &KPIUsecase{
		contractRepo:   contractRepo,
		additiveRepo:   additiveRepo,
		complianceRepo: complianceRepo,
		supplierRepo:   supplierRepo,
		eventRepo:      eventRepo,
	}
}

// pct returns numerator/denominator as a percentage, null when the
// denominator is zero. Absence of data is reported as null, never as 0.
func pct(numerator, denominator float64) null.Float64 {
	if denominator == 0 {
		return null.Float64{}
	}
	return null.Float64From(numerator / denominator * 100)
}

func mean(sum float64, n int) null.Float64 {
	if n == 0 {
		return null.Float64{}
	}
	return null.Float64From(sum / float64(n))
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Calculate builds the report over the given contract scope. A nil
// contractIDs slice means the whole portfolio; an empty non-nil slice is an
// empty scope. expiringDays <= 0 falls back to the default window.
func (uc *KPIUsecase) Calculate(ctx context.Context, expiringDays int, contractIDs []uuid.UUID) (*KPIReport, error) {
	if expiringDays <= 0 {
		expiringDays = DefaultExpiringDays
	}

	contracts, err := uc.contractRepo.Snapshot(ctx, contractIDs)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return &KPIReport{HasData: false}, nil
	}

	scope := contractIDs
	if scope == nil {
		// keep the child snapshots consistent with the contract set
		scope = make([]uuid.UUID, 0, len(contracts))
		for _, c := range contracts {
			scope = append(scope, c.ID)
		}
	}

	additives, err := uc.additiveRepo.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	compliance, err := uc.complianceRepo.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}
	events, err := uc.eventRepo.Snapshot(ctx, scope)
	if err != nil {
		return nil, err
	}

	n := len(contracts)
	today := startOfToday()
	horizon := today.AddDate(0, 0, expiringDays)

	var (
		totalValue, executedTotal, savingsTotal, multasTotal float64
		roiSum, revContrib, aggRisk                          float64
		diversificationSum, maturitySum, governanceSum       float64
		automationSum, defaultProbSum, disruptionSum         float64
		durationSum                                          float64
		durationN                                            int
		leadSum                                              float64
		leadN                                                int
		archiveSum                                           float64
		archiveN                                             int
		active, finalized, expiringCount, expiredNoRenew     int
		digitallySigned, strategic, opCritical, keyDep       int
		litigation, criticalClauses                          int
	)
	byType := map[string]int{}
	bySupplier := map[string]int{}
	byDepartment := map[string]int{}
	byStatus := map[string]int{}
	valueByDepartment := map[string]float64{}

	for _, c := range contracts {
		totalValue += c.ContractValue
		executedTotal += c.ExecutedValue
		savingsTotal += c.SavingsValue
		multasTotal += c.PenaltiesValue
		roiSum += c.ROIValue
		revContrib += c.RevenueContribution
		aggRisk += c.AggregateFinancialRisk
		diversificationSum += c.SupplierDiversificationScore
		maturitySum += c.MaturityScore
		governanceSum += c.GovernanceIndex
		automationSum += c.AutomationPct
		defaultProbSum += c.DefaultProbability
		disruptionSum += c.DisruptionPredictiveScore

		if c.Status.IsActive() {
			active++
		}
		if c.Status == entities.StatusFinalizado {
			finalized++
		}
		if c.StartDate.Valid && c.EndDate.Valid {
			durationSum += c.EndDate.Time.Sub(c.StartDate.Time).Hours() / 24
			durationN++
		}
		if c.EndDate.Valid {
			if !c.EndDate.Time.Before(today) && !c.EndDate.Time.After(horizon) {
				expiringCount++
			}
			if c.EndDate.Time.Before(today) && c.Status != entities.StatusFinalizado {
				expiredNoRenew++
			}
		}
		if c.SignedDate.Valid {
			leadSum += c.SignedDate.Time.Sub(c.CreatedAt).Hours() / 24
			leadN++
		}
		if c.ArchivedDate.Valid {
			archiveSum += c.ArchivedDate.Time.Sub(c.CreatedAt).Hours() / 24
			archiveN++
		}
		if c.DigitallySigned {
			digitallySigned++
		}
		if c.StrategicAlignment {
			strategic++
		}
		if c.OperationCritical {
			opCritical++
		}
		if c.SupplierKeyDependency {
			keyDep++
		}
		if litigationRe.MatchString(c.LegalNotes) {
			litigation++
		}
		if c.CriticalClauses {
			criticalClauses++
		}

		byType[c.Type]++
		bySupplier[c.SupplierName()]++
		byDepartment[c.Department]++
		byStatus[string(c.Status)]++
		valueByDepartment[c.Department] += c.ContractValue
	}

	var aditivosTotal float64
	additiveContracts := map[uuid.UUID]struct{}{}
	for _, a := range additives {
		aditivosTotal += a.AdditiveValue
		additiveContracts[a.ContractID] = struct{}{}
	}
	addFreq := mean(float64(len(additives)), len(additiveContracts))

	editCount := 0
	for _, e := range events {
		if e.EventType == entities.EventEdit {
			editCount++
		}
	}

	var comp ComplianceKPIs
	if len(compliance) > 0 {
		var mandatorySum, riskSum, regSum float64
		var outStandard, noGuarantee, audited, nonconf int
		for _, cc := range compliance {
			mandatorySum += cc.MandatoryClausesScore
			riskSum += cc.RiskScore
			regSum += cc.RegulatoryCompliancePct
			if cc.OutOfStandard {
				outStandard++
			}
			if !cc.HasGuarantee {
				noGuarantee++
			}
			if cc.Audited {
				audited++
			}
			nonconf += cc.NonconformitiesCount
		}
		comp = ComplianceKPIs{
			PctClausulasObrigatorias:   mean(mandatorySum, len(compliance)),
			ForaPadraoJuridico:         null.IntFrom(outStandard),
			SemGarantiaOuSeguro:        null.IntFrom(noGuarantee),
			IndiceRisco:                mean(riskSum, len(compliance)),
			ConformidadeRegulatoriaPct: mean(regSum, len(compliance)),
			AuditadosPct:               pct(float64(audited), float64(len(compliance))),
			NaoConformidades:           null.IntFrom(nonconf),
		}
	}

	var supp SupplierKPIs
	if len(supplier) > 0 {
		var slaSum, failSum, onTimeSum, qualitySum, switchSum, satisfactionSum float64
		for _, sp := range supplier {
			slaSum += sp.SLAPct
			failSum += sp.DeliveryFailRate
			onTimeSum += sp.OnTimePct
			qualitySum += sp.QualityScore
			switchSum += sp.SupplierSwitchRate
			satisfactionSum += sp.SatisfactionScore
		}
		supp = SupplierKPIs{
			SLACumpridoPct:             mean(slaSum, len(supplier)),
			IndiceFalhasEntrega:        mean(failSum, len(supplier)),
			PontualidadeEntrega:        mean(onTimeSum, len(supplier)),
			QualidadeServico:           mean(qualitySum, len(supplier)),
			TaxaSubstituicaoFornecedor: mean(switchSum, len(supplier)),
			SatisfacaoFornecedor:       mean(satisfactionSum, len(supplier)),
		}
	}

	leadTime := mean(leadSum, leadN)
	digitalPct := pct(float64(digitallySigned), float64(n))
	automationMean := automationSum / float64(n)

	sections := &KPISections{
		Financeiro: FinancialKPIs{
			ValorTotalContratado:     totalValue,
			ExecutadoVsContratadoPct: pct(executedTotal, totalValue),
			EconomiaObtida:           savingsTotal,
			CustoMedioContrato:       mean(totalValue, n),
			MultasTotal:              multasTotal,
			CustosAdicionaisAditivos: aditivosTotal,
			VariacaoPrecoPct:         pct(aditivosTotal, totalValue),
			ROIMedio:                 mean(roiSum, n),
		},
		PrazoExecucao: TermKPIs{
			PrazoMedioVigenciaDias:  mean(durationSum, durationN),
			PctProximosVencimento:   pct(float64(expiringCount), float64(n)),
			LeadTimeContratacaoDias: leadTime,
			TaxaRenovacao:           pct(float64(finalized), float64(n)),
			VencidosSemRenovacao:    expiredNoRenew,
		},
		ComplianceRisco: comp,
		Operacionais: OperationalKPIs{
			TotalAtivos:               active,
			ContratosPorTipo:          byType,
			ContratosPorFornecedor:    bySupplier,
			ContratosPorDepartamento:  byDepartment,
			VolumeAditivosMedio:       addFreq,
			FrequenciaAlteracoes:      editCount,
			DigitalizadosVsFisicosPct: digitalPct,
		},
		Fornecedor: supp,
		Juridicos: LegalKPIs{
			LitigiosRelacionados:      litigation,
			ComClausulasCriticas:      criticalClauses,
			ExposicaoJuridicaEstimada: aggRisk,
		},
		CLM: LifecycleKPIs{
			TempoCriacaoAprovacaoAssinatura: leadTime,
			TempoMedioAssinatura:            leadTime,
			PctAssinadosDigitalmente:        digitalPct,
			TempoMedioArquivamento:          mean(archiveSum, archiveN),
			EficienciaFluxoAprovacao:        null.Float64From(automationMean),
		},
		Estrategicos: StrategicKPIs{
			PctAlinhadosPlanejamento:     pct(float64(strategic), float64(n)),
			ContribuicaoReceita:          revContrib,
			ContratosCriticosOperacao:    pct(float64(opCritical), float64(n)),
			DependenciaFornecedoresChave: float64(keyDep) / float64(n) * 100,
			DiversificacaoFornecedores:   diversificationSum / float64(n),
		},
		Avancados: AdvancedKPIs{
			ScoreMaturidade:          maturitySum / float64(n),
			IndiceGovernanca:         governanceSum / float64(n),
			PctAutomacao:             automationMean,
			ProbInadimplencia:        defaultProbSum / float64(n),
			RiscoFinanceiroAgregado:  aggRisk,
			RupturaPreditivaBaseline: disruptionSum / float64(n),
		},
	}

	charts := &KPICharts{
		StatusDist:           byStatus,
		TipoDist:             byType,
		ValorPorDepartamento: valueByDepartment,
	}

	return &KPIReport{HasData: true, Sections: sections, Charts: charts}, nil
}
