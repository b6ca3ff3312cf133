package firestore

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AuthenticationError means the credential is missing, malformed, or was rejected.
type AuthenticationError struct {
	Err error
}

func (e AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e AuthenticationError) Unwrap() error {
	return e.Err
}

// NetworkError means the transport failed before an answer arrived.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// PermissionError means the credential is valid but may not read the collection.
type PermissionError struct {
	Err error
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %v", e.Err)
}

func (e PermissionError) Unwrap() error {
	return e.Err
}

// Classify wraps a gRPC error in the matching taxonomy type.
// Errors that are already classified, and errors without a matching code,
// are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		ae AuthenticationError
		ne NetworkError
		pe PermissionError
	)
	if errors.As(err, &ae) || errors.As(err, &ne) || errors.As(err, &pe) {
		return err
	}
	switch status.Code(err) {
	case codes.Unauthenticated:
		return AuthenticationError{Err: err}
	case codes.PermissionDenied:
		return PermissionError{Err: err}
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.Aborted, codes.Internal, codes.ResourceExhausted:
		return NetworkError{Err: err}
	}
	return err
}
