package utils

import (
	"encoding/binary"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.Len(t, id, 24)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestGenerateIDEncodesCreationTime(t *testing.T) {
	id := GenerateID()
	b, err := hex.DecodeString(id[:8])
	require.NoError(t, err)
	ts := time.Unix(int64(binary.BigEndian.Uint32(b)), 0)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}

func TestShortID(t *testing.T) {
	id := ShortID()
	assert.Len(t, id, 4)
}
