package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	pattern := regexp.MustCompile(`^ss-[a-zA-Z0-9]{16}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateWithPrefix("ss-")
		require.NoError(t, err)
		require.Regexp(t, pattern, id)
		require.Len(t, id, len("ss-")+length)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
