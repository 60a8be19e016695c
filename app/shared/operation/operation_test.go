package operation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DanielWijono/minton3t-ranking/app/observability"
	"github.com/DanielWijono/minton3t-ranking/app/shared/results"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRunner() *Runner {
	return &Runner{
		Service: "TestService",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: observability.NewPrometheusMetrics(prometheus.NewRegistry()),
		Tracer:  noop.NewTracerProvider().Tracer("test"),
	}
}

func TestWithTelemetry(t *testing.T) {
	ctx := context.Background()

	t.Run("success passes through", func(t *testing.T) {
		res, err := WithTelemetry(newRunner(), ctx, "Op", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
			return results.SuccessResult[int, error](7), nil
		})
		require.NoError(t, err)
		require.Equal(t, 7, *res.Success)
	})

	t.Run("error is wrapped with operation name", func(t *testing.T) {
		cause := errors.New("db down")
		_, err := WithTelemetry(newRunner(), ctx, "Op", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
			return results.OperationResult[int, error]{}, cause
		})
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "Op: ")
	})

	t.Run("failure result is not an error", func(t *testing.T) {
		res, err := WithTelemetry(newRunner(), ctx, "Op", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
			return results.FailureResult[int, error](errors.New("not found")), nil
		})
		require.NoError(t, err)
		require.True(t, res.IsFailure())
	})

	t.Run("panic becomes error", func(t *testing.T) {
		res, err := WithTelemetry(newRunner(), ctx, "Op", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
			panic("kaboom")
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "kaboom")
		require.False(t, res.IsSuccess())
	})

	t.Run("nil logger, metrics and tracer", func(t *testing.T) {
		r := &Runner{Service: "Bare"}
		_, err := WithTelemetry(r, ctx, "Op", "id", func(ctx context.Context) (results.OperationResult[int, error], error) {
			return results.SuccessResult[int, error](1), nil
		})
		require.NoError(t, err)
	})
}

func TestRunInTx_NilDBRunsDirectly(t *testing.T) {
	var got bun.IDB = &bun.DB{}
	_, err := RunInTx(&Runner{}, context.Background(), func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		got = db
		return results.SuccessResult[int, error](1), nil
	})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSavepoint_NilDBRunsDirectly(t *testing.T) {
	called := false
	err := Savepoint(context.Background(), nil, func(ctx context.Context, db bun.IDB) error {
		called = true
		require.Nil(t, db)
		return errors.New("entry failed")
	})
	require.True(t, called)
	require.EqualError(t, err, "entry failed")
}
