package eapi

import "github.com/crmarques/eosport/faults"

func connectionError(message string, cause error) error {
	return faults.NewTypedError(faults.ConnectionError, message, cause)
}

func authenticationError(message string, cause error) error {
	return faults.NewTypedError(faults.AuthenticationError, message, cause)
}

func commandError(message string, cause error) error {
	return faults.NewTypedError(faults.CommandError, message, cause)
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
