package pickup

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateQR_ProducesPNG(t *testing.T) {
	gen := NewGenerator("test-secret")

	png, err := gen.GenerateQR(Code{
		OrderID:  "order-1",
		BuyerID:  "buyer1",
		SellerID: "farmer1",
		IssuedAt: time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "expected PNG output")
	assert.Greater(t, len(png), 100)
}

func TestGenerateQR_ShortSecretStillWorks(t *testing.T) {
	// Secrets are hashed to a fixed AES key length, so any passphrase is valid
	gen := NewGenerator("x")

	png, err := gen.GenerateQR(Code{OrderID: "order-1"})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}
