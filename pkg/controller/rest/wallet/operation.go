/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet provides the REST operations for wallet credential management.
package wallet

import (
	"net/http"

	"github.com/securekey/fabric-wallet-go/pkg/controller/command/wallet"
	"github.com/securekey/fabric-wallet-go/pkg/controller/internal/cmdutil"
	"github.com/securekey/fabric-wallet-go/pkg/controller/rest"
	"github.com/securekey/fabric-wallet-go/spi/storage"
)

// All command operations.
const (
	OperationID = "/wallet"

	// command Paths.
	ListCredentialsPath    = OperationID + "/credentials/list"
	ContainsCredentialPath = OperationID + "/credentials/contains"
	GetCredentialPath      = OperationID + "/credentials/get"
	AddCredentialPath      = OperationID + "/credentials/add"
	UpdateCredentialPath   = OperationID + "/credentials/update"
	RemoveCredentialPath   = OperationID + "/credentials/remove"
	ListEnrollmentsPath    = OperationID + "/enrollments"
)

// provider contains dependencies for the wallet REST controller.
type provider interface {
	StorageProvider() storage.Provider
}

// Operation contains REST operations provided by the wallet.
type Operation struct {
	handlers []rest.Handler
	command  *wallet.Command
}

// New returns new wallet REST controller.
func New(p provider) *Operation {
	o := &Operation{command: wallet.New(p)}

	o.registerHandler()

	return o
}

// GetRESTHandlers get all controller API handlers available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// registerHandler register handlers to be exposed from this service as REST API endpoints.
func (o *Operation) registerHandler() {
	o.handlers = []rest.Handler{
		cmdutil.NewHTTPHandler(ListCredentialsPath, http.MethodPost, o.ListCredentials),
		cmdutil.NewHTTPHandler(ContainsCredentialPath, http.MethodPost, o.ContainsCredential),
		cmdutil.NewHTTPHandler(GetCredentialPath, http.MethodPost, o.GetCredential),
		cmdutil.NewHTTPHandler(AddCredentialPath, http.MethodPost, o.AddCredential),
		cmdutil.NewHTTPHandler(UpdateCredentialPath, http.MethodPost, o.UpdateCredential),
		cmdutil.NewHTTPHandler(RemoveCredentialPath, http.MethodPost, o.RemoveCredential),
		cmdutil.NewHTTPHandler(ListEnrollmentsPath, http.MethodPost, o.ListEnrollments),
	}
}

// ListCredentials swagger:route POST /wallet/credentials/list wallet listCredentialsReq
//
// Returns the sorted names of all credentials held for an enrollment.
//
// Responses:
//    default: genericError
//        200: listCredentialsRes
func (o *Operation) ListCredentials(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ListCredentials, rw, req.Body)
}

// ContainsCredential swagger:route POST /wallet/credentials/contains wallet containsCredentialReq
//
// Checks whether a credential of the given name is held for an enrollment.
//
// Responses:
//    default: genericError
//        200: containsCredentialRes
func (o *Operation) ContainsCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ContainsCredential, rw, req.Body)
}

// GetCredential swagger:route POST /wallet/credentials/get wallet getCredentialReq
//
// Returns the value of a named credential. A credential that is not present is
// reported with found=false, not as an error.
//
// Responses:
//    default: genericError
//        200: getCredentialRes
func (o *Operation) GetCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.GetCredential, rw, req.Body)
}

// AddCredential swagger:route POST /wallet/credentials/add wallet addCredentialReq
//
// Stores a credential value under the given name, overwriting any previous value
// of the same name.
//
// Responses:
//    default: genericError
//        200: emptyRes
func (o *Operation) AddCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.AddCredential, rw, req.Body)
}

// UpdateCredential swagger:route POST /wallet/credentials/update wallet updateCredentialReq
//
// Overwrites the value of a named credential. Does not require the credential to
// already exist.
//
// Responses:
//    default: genericError
//        200: emptyRes
func (o *Operation) UpdateCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.UpdateCredential, rw, req.Body)
}

// RemoveCredential swagger:route POST /wallet/credentials/remove wallet removeCredentialReq
//
// Removes a named credential. Removing a credential that is not present is not an
// error.
//
// Responses:
//    default: genericError
//        200: emptyRes
func (o *Operation) RemoveCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.RemoveCredential, rw, req.Body)
}

// ListEnrollments swagger:route POST /wallet/enrollments wallet listEnrollmentsReq
//
// Returns the sorted enrollment IDs of all records in a wallet.
//
// Responses:
//    default: genericError
//        200: listEnrollmentsRes
func (o *Operation) ListEnrollments(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ListEnrollments, rw, req.Body)
}
