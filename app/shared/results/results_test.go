package results

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperationResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := SuccessResult[int, error](42)
		require.True(t, r.IsSuccess())
		require.False(t, r.IsFailure())
		require.Equal(t, 42, *r.Success)
	})

	t.Run("failure", func(t *testing.T) {
		boom := errors.New("boom")
		r := FailureResult[int, error](boom)
		require.False(t, r.IsSuccess())
		require.True(t, r.IsFailure())
		require.ErrorIs(t, *r.Failure, boom)
	})

	t.Run("zero value is neither", func(t *testing.T) {
		var r OperationResult[string, error]
		require.False(t, r.IsSuccess())
		require.False(t, r.IsFailure())
	})
}
