package errors

import "errors"

const (
	NotFound              = "NotFound"
	notFoundMessage       = "record not found"
	ValidationError       = "ValidationError"
	validationErrorMsg    = "validation error"
	ResourceAlreadyExists = "ResourceAlreadyExists"
	alreadyExistsErrorMsg = "resource already exists"
	RepositoryError       = "RepositoryError"
	repositoryErrorMsg    = "error in repository operation"
	TransportError        = "TransportError"
	transportErrorMsg     = "error in outbound transport"
	NotAuthorized         = "NotAuthorized"
	notAuthorizedErrorMsg = "not authorized"
	UnknownError          = "UnknownError"
	unknownErrorMsg       = "something went wrong"
)

// AppError carries an underlying error together with a domain error type
// that the HTTP layer and the worker map onto their own failure handling.
type AppError struct {
	Err  error
	Type string
}

func NewAppError(err error, errType string) *AppError {
	return &AppError{
		Err:  err,
		Type: errType,
	}
}

func NewAppErrorWithType(errType string) *AppError {
	var err error

	switch errType {
	case NotFound:
		err = errors.New(notFoundMessage)
	case ValidationError:
		err = errors.New(validationErrorMsg)
	case ResourceAlreadyExists:
		err = errors.New(alreadyExistsErrorMsg)
	case RepositoryError:
		err = errors.New(repositoryErrorMsg)
	case TransportError:
		err = errors.New(transportErrorMsg)
	case NotAuthorized:
		err = errors.New(notAuthorizedErrorMsg)
	default:
		err = errors.New(unknownErrorMsg)
	}

	return &AppError{
		Err:  err,
		Type: errType,
	}
}

func (appErr *AppError) Error() string {
	return appErr.Err.Error()
}

func (appErr *AppError) Unwrap() error {
	return appErr.Err
}

// TypeOf extracts the AppError type from an error chain, UnknownError if the
// chain carries no AppError.
func TypeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return UnknownError
}
