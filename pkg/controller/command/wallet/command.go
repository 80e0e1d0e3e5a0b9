/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet provides the controller command for wallet credential operations.
package wallet

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/securekey/fabric-wallet-go/component/log"
	"github.com/securekey/fabric-wallet-go/pkg/controller/command"
	"github.com/securekey/fabric-wallet-go/pkg/controller/internal/cmdutil"
	"github.com/securekey/fabric-wallet-go/pkg/internal/logutil"
	"github.com/securekey/fabric-wallet-go/pkg/wallet"
	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

var logger = log.New("fabric-wallet/command/wallet")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.Wallet)

	// ListCredentialsErrorCode for errors while listing credential names.
	ListCredentialsErrorCode

	// ContainsCredentialErrorCode for errors during a credential membership check.
	ContainsCredentialErrorCode

	// GetCredentialErrorCode for errors while reading a credential value.
	GetCredentialErrorCode

	// AddCredentialErrorCode for errors while storing a credential value.
	AddCredentialErrorCode

	// UpdateCredentialErrorCode for errors while overwriting a credential value.
	UpdateCredentialErrorCode

	// RemoveCredentialErrorCode for errors while removing a credential.
	RemoveCredentialErrorCode

	// ListEnrollmentsErrorCode for errors while listing wallet enrollments.
	ListEnrollmentsErrorCode
)

// All command methods.
const (
	// CommandName package command name.
	CommandName = "wallet"

	// ListCredentialsMethod for listing credential names of an enrollment.
	ListCredentialsMethod = "ListCredentials"

	// ContainsCredentialMethod for checking presence of a credential.
	ContainsCredentialMethod = "ContainsCredential"

	// GetCredentialMethod for reading a credential value.
	GetCredentialMethod = "GetCredential"

	// AddCredentialMethod for storing a credential value.
	AddCredentialMethod = "AddCredential"

	// UpdateCredentialMethod for overwriting a credential value.
	UpdateCredentialMethod = "UpdateCredential"

	// RemoveCredentialMethod for removing a credential.
	RemoveCredentialMethod = "RemoveCredential"

	// ListEnrollmentsMethod for listing enrollments of a wallet.
	ListEnrollmentsMethod = "ListEnrollments"
)

// miscellaneous constants for the wallet command controller.
const (
	logSuccess         = "success"
	logWalletIDKey     = "walletID"
	logEnrollmentIDKey = "enrollmentID"

	emptyWalletIDErr     = "walletId cannot be empty"
	emptyEnrollmentIDErr = "enrollmentId cannot be empty"
	emptyNameErr         = "name cannot be empty"
)

// provider contains dependencies for the wallet command controller.
type provider interface {
	StorageProvider() spi.Provider
}

// Command contains operations provided by the wallet command controller.
type Command struct {
	ctx provider
}

// New returns new wallet command controller instance.
func New(p provider) *Command {
	return &Command{ctx: p}
}

// GetHandlers returns list of all commands supported by this controller command.
func (o *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, ListCredentialsMethod, o.ListCredentials),
		cmdutil.NewCommandHandler(CommandName, ContainsCredentialMethod, o.ContainsCredential),
		cmdutil.NewCommandHandler(CommandName, GetCredentialMethod, o.GetCredential),
		cmdutil.NewCommandHandler(CommandName, AddCredentialMethod, o.AddCredential),
		cmdutil.NewCommandHandler(CommandName, UpdateCredentialMethod, o.UpdateCredential),
		cmdutil.NewCommandHandler(CommandName, RemoveCredentialMethod, o.RemoveCredential),
		cmdutil.NewCommandHandler(CommandName, ListEnrollmentsMethod, o.ListEnrollments),
	}
}

// ListCredentials returns the sorted names of all credentials held for an enrollment.
func (o *Command) ListCredentials(rw io.Writer, req io.Reader) command.Error {
	request := &ListCredentialsRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, ListCredentialsMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateIdentity(&request.WalletIdentity, ListCredentialsMethod); validationErr != nil {
		return validationErr
	}

	names, err := o.wallet(&request.WalletIdentity).List()
	if err != nil {
		logutil.LogError(logger, CommandName, ListCredentialsMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(ListCredentialsErrorCode, err)
	}

	command.WriteNillableResponse(rw, &ListCredentialsResponse{Names: names}, logger)

	logutil.LogDebug(logger, CommandName, ListCredentialsMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// ContainsCredential reports whether a credential of the given name is held for an enrollment.
func (o *Command) ContainsCredential(rw io.Writer, req io.Reader) command.Error {
	request := &ContainsCredentialRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, ContainsCredentialMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateRequest(&request.WalletIdentity, request.Name, ContainsCredentialMethod); validationErr != nil {
		return validationErr
	}

	contains, err := o.wallet(&request.WalletIdentity).Contains(request.Name)
	if err != nil {
		logutil.LogError(logger, CommandName, ContainsCredentialMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(ContainsCredentialErrorCode, err)
	}

	command.WriteNillableResponse(rw, &ContainsCredentialResponse{Contains: contains}, logger)

	logutil.LogDebug(logger, CommandName, ContainsCredentialMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// GetCredential returns the value of a named credential. A credential that is not
// present is reported with Found=false in the response, not as an error.
func (o *Command) GetCredential(rw io.Writer, req io.Reader) command.Error {
	request := &GetCredentialRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, GetCredentialMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateRequest(&request.WalletIdentity, request.Name, GetCredentialMethod); validationErr != nil {
		return validationErr
	}

	w := o.wallet(&request.WalletIdentity)

	found, err := w.Contains(request.Name)
	if err != nil {
		logutil.LogError(logger, CommandName, GetCredentialMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(GetCredentialErrorCode, err)
	}

	response := &GetCredentialResponse{Found: found}

	if found {
		value, err := w.Get(request.Name)
		if err != nil {
			logutil.LogError(logger, CommandName, GetCredentialMethod, err.Error(),
				logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

			return command.NewExecuteError(GetCredentialErrorCode, err)
		}

		response.Value = value
	}

	command.WriteNillableResponse(rw, response, logger)

	logutil.LogDebug(logger, CommandName, GetCredentialMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// AddCredential stores a credential value under the given name, overwriting any
// previous value of the same name.
func (o *Command) AddCredential(rw io.Writer, req io.Reader) command.Error {
	request := &AddCredentialRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, AddCredentialMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateRequest(&request.WalletIdentity, request.Name, AddCredentialMethod); validationErr != nil {
		return validationErr
	}

	if err := o.wallet(&request.WalletIdentity).Add(request.Name, request.Value); err != nil {
		logutil.LogError(logger, CommandName, AddCredentialMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(AddCredentialErrorCode, err)
	}

	command.WriteNillableResponse(rw, nil, logger)

	logutil.LogDebug(logger, CommandName, AddCredentialMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// UpdateCredential overwrites the value of a named credential. Like AddCredential,
// it does not require the credential to already exist.
func (o *Command) UpdateCredential(rw io.Writer, req io.Reader) command.Error {
	request := &UpdateCredentialRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, UpdateCredentialMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateRequest(&request.WalletIdentity, request.Name, UpdateCredentialMethod); validationErr != nil {
		return validationErr
	}

	if err := o.wallet(&request.WalletIdentity).Update(request.Name, request.Value); err != nil {
		logutil.LogError(logger, CommandName, UpdateCredentialMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(UpdateCredentialErrorCode, err)
	}

	command.WriteNillableResponse(rw, nil, logger)

	logutil.LogDebug(logger, CommandName, UpdateCredentialMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// RemoveCredential removes a named credential. Removing a credential that is not
// present is not an error.
func (o *Command) RemoveCredential(rw io.Writer, req io.Reader) command.Error {
	request := &RemoveCredentialRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, RemoveCredentialMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if validationErr := validateRequest(&request.WalletIdentity, request.Name, RemoveCredentialMethod); validationErr != nil {
		return validationErr
	}

	if err := o.wallet(&request.WalletIdentity).Remove(request.Name); err != nil {
		logutil.LogError(logger, CommandName, RemoveCredentialMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(RemoveCredentialErrorCode, err)
	}

	command.WriteNillableResponse(rw, nil, logger)

	logutil.LogDebug(logger, CommandName, RemoveCredentialMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID),
		logutil.CreateKeyValueString(logEnrollmentIDKey, request.EnrollmentID))

	return nil
}

// ListEnrollments returns the sorted enrollment IDs of all records in a wallet.
func (o *Command) ListEnrollments(rw io.Writer, req io.Reader) command.Error {
	request := &ListEnrollmentsRequest{}

	if err := json.NewDecoder(req).Decode(request); err != nil {
		logutil.LogInfo(logger, CommandName, ListEnrollmentsMethod, err.Error())

		return command.NewValidationError(InvalidRequestErrorCode, err)
	}

	if request.WalletID == "" {
		logutil.LogDebug(logger, CommandName, ListEnrollmentsMethod, emptyWalletIDErr)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(emptyWalletIDErr))
	}

	enrollmentIDs, err := o.ctx.StorageProvider().ListRecords(request.WalletID)
	if err != nil {
		logutil.LogError(logger, CommandName, ListEnrollmentsMethod, err.Error(),
			logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

		return command.NewExecuteError(ListEnrollmentsErrorCode, err)
	}

	command.WriteNillableResponse(rw, &ListEnrollmentsResponse{EnrollmentIDs: enrollmentIDs}, logger)

	logutil.LogDebug(logger, CommandName, ListEnrollmentsMethod, logSuccess,
		logutil.CreateKeyValueString(logWalletIDKey, request.WalletID))

	return nil
}

func (o *Command) wallet(identity *WalletIdentity) *wallet.StoreWallet {
	return wallet.New(o.ctx.StorageProvider(), identity.WalletID, identity.EnrollmentID)
}

func validateIdentity(identity *WalletIdentity, method string) command.Error {
	if identity.WalletID == "" {
		logutil.LogDebug(logger, CommandName, method, emptyWalletIDErr)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(emptyWalletIDErr))
	}

	if identity.EnrollmentID == "" {
		logutil.LogDebug(logger, CommandName, method, emptyEnrollmentIDErr)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(emptyEnrollmentIDErr))
	}

	return nil
}

func validateRequest(identity *WalletIdentity, name, method string) command.Error {
	if validationErr := validateIdentity(identity, method); validationErr != nil {
		return validationErr
	}

	if name == "" {
		logutil.LogDebug(logger, CommandName, method, emptyNameErr)

		return command.NewValidationError(InvalidRequestErrorCode, errors.New(emptyNameErr))
	}

	return nil
}
