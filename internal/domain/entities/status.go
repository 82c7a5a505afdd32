package entities

// ContractStatus represents the lifecycle stage of a contract
type ContractStatus string

const (
	StatusGerado      ContractStatus = "Gerado"
	StatusAssinado    ContractStatus = "Assinado"
	StatusProtocolado ContractStatus = "Protocolado"
	StatusEmVigor     ContractStatus = "Em vigor"
	StatusFinalizado  ContractStatus = "Finalizado"
)

// StatusFlow is the ordered workflow; transitions move one step at a time.
var StatusFlow = []ContractStatus{
	StatusGerado,
	StatusAssinado,
	StatusProtocolado,
	StatusEmVigor,
	StatusFinalizado,
}

// ActiveStatuses are the stages counted as "active" by KPIs and listings.
var ActiveStatuses = []ContractStatus{
	StatusAssinado,
	StatusProtocolado,
	StatusEmVigor,
}

func (s ContractStatus) Valid() bool {
	return s.flowIndex() >= 0
}

// IsActive reports whether the contract counts as active (signed and running).
func (s ContractStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func (s ContractStatus) flowIndex() int {
	for i, st := range StatusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// CanTransition reports whether a status change is allowed. Without override
// only same-status no-ops and moves to the immediately adjacent stage are
// permitted. The override flag allows any pair; it exists to correct
// data-entry mistakes.
func CanTransition(from, to ContractStatus, override bool) bool {
	if override {
		return true
	}
	if from == to {
		return true
	}
	fromIdx := from.flowIndex()
	toIdx := to.flowIndex()
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx == fromIdx-1 || toIdx == fromIdx+1
}
