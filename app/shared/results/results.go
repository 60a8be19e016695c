// Package results holds the success/failure envelope returned by service operations.
//
// A Failure is a domain outcome the caller is expected to handle (a row that could not be
// reconciled, a period that does not exist). Infrastructure problems are returned as error
// alongside an empty result and never travel inside the envelope.
package results

// OperationResult carries either a success payload or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
