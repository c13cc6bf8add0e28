//go:build unit

package randid_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"cedra-backend/internal/pkg/randid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserID(t *testing.T) {
	id, err := randid.NewUserID()
	require.NoError(t, err)

	assert.Len(t, id, randid.UserIDBytes*2)
	_, err = hex.DecodeString(id)
	assert.NoError(t, err)

	other, err := randid.NewUserID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestTempPassword(t *testing.T) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

	pw, err := randid.TempPassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}
