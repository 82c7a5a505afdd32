package entities_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"logichain.backend/internal/domain/entities"
)

func TestCanTransitionAdjacent(t *testing.T) {
	cases := []struct {
		from, to entities.ContractStatus
		want     bool
	}{
		{entities.StatusGerado, entities.StatusAssinado, true},
		{entities.StatusAssinado, entities.StatusProtocolado, true},
		{entities.StatusProtocolado, entities.StatusEmVigor, true},
		{entities.StatusEmVigor, entities.StatusFinalizado, true},
		{entities.StatusAssinado, entities.StatusGerado, true},
		{entities.StatusFinalizado, entities.StatusEmVigor, true},
		{entities.StatusGerado, entities.StatusGerado, true},
		{entities.StatusGerado, entities.StatusProtocolado, false},
		{entities.StatusGerado, entities.StatusEmVigor, false},
		{entities.StatusGerado, entities.StatusFinalizado, false},
		{entities.StatusAssinado, entities.StatusFinalizado, false},
		{entities.StatusFinalizado, entities.StatusGerado, false},
	}
	for _, tc := range cases {
		got := entities.CanTransition(tc.from, tc.to, false)
		require.Equal(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionOverride(t *testing.T) {
	require.True(t, entities.CanTransition(entities.StatusGerado, entities.StatusFinalizado, true))
	require.True(t, entities.CanTransition(entities.StatusFinalizado, entities.StatusGerado, true))
	// override even accepts names outside the flow
	require.True(t, entities.CanTransition(entities.StatusGerado, entities.ContractStatus("Suspenso"), true))
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	require.False(t, entities.CanTransition(entities.StatusGerado, entities.ContractStatus("Suspenso"), false))
	require.False(t, entities.CanTransition(entities.ContractStatus(""), entities.StatusGerado, false))
}

func TestStatusValid(t *testing.T) {
	for _, s := range entities.StatusFlow {
		require.True(t, s.Valid())
	}
	require.False(t, entities.ContractStatus("Suspenso").Valid())
	require.False(t, entities.ContractStatus("").Valid())
}

func TestStatusIsActive(t *testing.T) {
	require.True(t, entities.StatusAssinado.IsActive())
	require.True(t, entities.StatusProtocolado.IsActive())
	require.True(t, entities.StatusEmVigor.IsActive())
	require.False(t, entities.StatusGerado.IsActive())
	require.False(t, entities.StatusFinalizado.IsActive())
}
