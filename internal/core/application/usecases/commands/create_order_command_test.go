package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	zone := testZone(t)
	cmd, err := commands.NewCreateOrderCommand(id, zone)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, zone, cmd.Zone())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, testZone(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidZone(t *testing.T) {
	id := kernel.NewUUID()
	_, err := commands.NewCreateOrderCommand(id, kernel.Zone{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrZoneIsNotConstructed)
}

func TestCreateOrderCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	err := cmd.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
