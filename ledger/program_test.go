package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	organizer  = "ORGANIZER-WALLET"
	appAddress = "PROGRAM-1"
)

func TestMintTicketOnlyOrganizer(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	_, err := program.MintTicket("SOME-OTHER-WALLET", "A12", 50)
	require.Error(t, err)
	assert.IsType(t, AuthorizationError{}, err)

	assetID, err := program.MintTicket(organizer, "A12", 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), assetID)
}

func TestMintTicketAssetIDsAreUnique(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		assetID, err := program.MintTicket(organizer, "A1", 10)
		require.NoError(t, err)
		require.False(t, seen[assetID], "asset id %d assigned twice", assetID)
		seen[assetID] = true
	}
}

func TestMintTicketSetsResaleCap(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	_, err := program.MintTicket(organizer, "A1", 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), program.MaxResalePrice())

	// last mint wins, the cap is a single global
	_, err = program.MintTicket(organizer, "A2", 60)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), program.MaxResalePrice())
}

func TestTransferTicket(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	assetID, err := program.MintTicket(organizer, "A12", 50)
	require.NoError(t, err)

	from, err := program.TransferTicket("BUYER-WALLET", assetID, Payment{
		From:     "BUYER-WALLET",
		Receiver: appAddress,
		Amount:   40,
	})
	require.NoError(t, err)
	assert.Equal(t, appAddress, from, "minted assets start in program custody")

	holder, ok := program.Holder(assetID)
	require.True(t, ok)
	assert.Equal(t, "BUYER-WALLET", holder)
}

func TestTransferTicketPriceCap(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	assetID, err := program.MintTicket(organizer, "A12", 60)
	require.NoError(t, err)

	_, err = program.TransferTicket("BUYER-WALLET", assetID, Payment{
		From:     "BUYER-WALLET",
		Receiver: appAddress,
		Amount:   80,
	})
	require.Error(t, err)
	assert.IsType(t, PriceCapExceededError{}, err)

	// rejection leaves the asset untouched
	holder, ok := program.Holder(assetID)
	require.True(t, ok)
	assert.Equal(t, appAddress, holder)
}

func TestTransferTicketValidations(t *testing.T) {
	program := NewProgram(organizer, appAddress)

	_, err := program.TransferTicket("BUYER-WALLET", 42, Payment{
		From:     "BUYER-WALLET",
		Receiver: appAddress,
		Amount:   10,
	})
	assert.IsType(t, AuthorizationError{}, err, "unknown asset")

	assetID, err := program.MintTicket(organizer, "A1", 50)
	require.NoError(t, err)

	_, err = program.TransferTicket("BUYER-WALLET", assetID, Payment{
		From:     "BUYER-WALLET",
		Receiver: "SOMEONE-ELSE",
		Amount:   10,
	})
	assert.IsType(t, AuthorizationError{}, err, "payment must target the program")
}
