package syncerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreWrite(t *testing.T) {
	require.NoError(t, StoreWrite("delete players", nil))

	cause := errors.New("connection reset")
	err := StoreWrite("delete players", cause)

	var swe *StoreWriteError
	require.ErrorAs(t, err, &swe)
	require.Equal(t, "delete players", swe.Op)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "delete players")
	require.Contains(t, err.Error(), "connection reset")
}
