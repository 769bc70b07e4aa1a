package locations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDropsUnknownIDs(t *testing.T) {
	stores := Default().Resolve([]string{"brasschaat", "genk", "unknown-id"})
	require.Len(t, stores, 2)
	assert.Equal(t, "Pomandi Brasschaat", stores[0].Name)
	assert.Equal(t, "Pomandi Genk", stores[1].Name)
}

func TestResolveKeepsRequestedOrder(t *testing.T) {
	stores := Default().Resolve([]string{"genk", "brasschaat"})
	require.Len(t, stores, 2)
	assert.Equal(t, "genk", stores[0].ID)
	assert.Empty(t, Default().Resolve(nil))
}

func TestLookup(t *testing.T) {
	s, ok := Default().Lookup("genk")
	require.True(t, ok)
	assert.Equal(t, "Vennestraat 331", s.Address)
	assert.Equal(t, "Lun-Sam: 10:00 - 18:00", s.Hours.Resolve("fr"))
	assert.Equal(t, "Ma-Za: 10:00 - 18:00", s.Hours.Resolve("de"))

	_, ok = Default().Lookup("antwerpen")
	assert.False(t, ok)
}

func TestWhatsAppDigits(t *testing.T) {
	assert.Equal(t, "32489107182", Store{WhatsApp: "+32 489 10-71-82"}.WhatsAppDigits())
	assert.Empty(t, Store{}.WhatsAppDigits())
}
