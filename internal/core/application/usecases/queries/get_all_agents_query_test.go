package queries_test

import (
	"testing"

	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAllAgentsQuery_Valid(t *testing.T) {
	principal, err := kernel.NewPrincipal(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)

	query, err := queries.NewGetAllAgentsQuery(principal)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetAllAgentsQuery_InvalidPrincipal(t *testing.T) {
	_, err := queries.NewGetAllAgentsQuery(kernel.Principal{})
	require.Error(t, err)
}

func TestGetAllAgentsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetAllAgentsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetAllAgentsQueryIsNotConstructed)
}
