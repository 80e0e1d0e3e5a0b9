/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"github.com/securekey/fabric-wallet-go/pkg/controller/command/wallet"
)

// listCredentialsRequest is request model for listing credential names of an enrollment.
//
// swagger:parameters listCredentialsReq
type listCredentialsRequest struct { // nolint: unused,deadcode
	// Params for listing credential names.
	//
	// in: body
	Params *wallet.ListCredentialsRequest
}

// listCredentialsResponse contains response for listing credential names of an enrollment.
//
// swagger:response listCredentialsRes
type listCredentialsResponse struct { // nolint: unused,deadcode
	// in: body
	wallet.ListCredentialsResponse
}

// containsCredentialRequest is request model for a credential membership check.
//
// swagger:parameters containsCredentialReq
type containsCredentialRequest struct { // nolint: unused,deadcode
	// Params for the membership check.
	//
	// in: body
	Params *wallet.ContainsCredentialRequest
}

// containsCredentialResponse contains response for a credential membership check.
//
// swagger:response containsCredentialRes
type containsCredentialResponse struct { // nolint: unused,deadcode
	// in: body
	wallet.ContainsCredentialResponse
}

// getCredentialRequest is request model for reading a credential value.
//
// swagger:parameters getCredentialReq
type getCredentialRequest struct { // nolint: unused,deadcode
	// Params for reading a credential value.
	//
	// in: body
	Params *wallet.GetCredentialRequest
}

// getCredentialResponse contains response for reading a credential value.
//
// swagger:response getCredentialRes
type getCredentialResponse struct { // nolint: unused,deadcode
	// in: body
	wallet.GetCredentialResponse
}

// addCredentialRequest is request model for storing a credential value.
//
// swagger:parameters addCredentialReq
type addCredentialRequest struct { // nolint: unused,deadcode
	// Params for storing a credential value.
	//
	// in: body
	Params *wallet.AddCredentialRequest
}

// updateCredentialRequest is request model for overwriting a credential value.
//
// swagger:parameters updateCredentialReq
type updateCredentialRequest struct { // nolint: unused,deadcode
	// Params for overwriting a credential value.
	//
	// in: body
	Params *wallet.UpdateCredentialRequest
}

// removeCredentialRequest is request model for removing a credential.
//
// swagger:parameters removeCredentialReq
type removeCredentialRequest struct { // nolint: unused,deadcode
	// Params for removing a credential.
	//
	// in: body
	Params *wallet.RemoveCredentialRequest
}

// listEnrollmentsRequest is request model for listing the enrollments of a wallet.
//
// swagger:parameters listEnrollmentsReq
type listEnrollmentsRequest struct { // nolint: unused,deadcode
	// Params for listing enrollments.
	//
	// in: body
	Params *wallet.ListEnrollmentsRequest
}

// listEnrollmentsResponse contains response for listing the enrollments of a wallet.
//
// swagger:response listEnrollmentsRes
type listEnrollmentsResponse struct { // nolint: unused,deadcode
	// in: body
	wallet.ListEnrollmentsResponse
}

// emptyResponse contains an empty response body.
//
// swagger:response emptyRes
type emptyResponse struct { // nolint: unused,deadcode
	// in: body
	Body struct{}
}
