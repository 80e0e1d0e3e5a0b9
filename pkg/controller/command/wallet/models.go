/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

// WalletIdentity is the wallet ID + enrollment ID pair addressing one wallet record.
type WalletIdentity struct {
	// WalletID of the enclosing wallet scope.
	WalletID string `json:"walletId"`

	// EnrollmentID of the enrolled identity within the wallet.
	EnrollmentID string `json:"enrollmentId"`
}

// ListCredentialsRequest is request model for listing credential names of an enrollment.
type ListCredentialsRequest struct {
	WalletIdentity
}

// ListCredentialsResponse is response model for listing credential names of an enrollment.
type ListCredentialsResponse struct {
	// Names of all credentials, sorted lexicographically.
	Names []string `json:"names"`
}

// ContainsCredentialRequest is request model for a credential membership check.
type ContainsCredentialRequest struct {
	WalletIdentity

	// Name of the credential to check.
	Name string `json:"name"`
}

// ContainsCredentialResponse is response model for a credential membership check.
type ContainsCredentialResponse struct {
	Contains bool `json:"contains"`
}

// GetCredentialRequest is request model for reading a credential value.
type GetCredentialRequest struct {
	WalletIdentity

	// Name of the credential to read.
	Name string `json:"name"`
}

// GetCredentialResponse is response model for reading a credential value.
// A credential that is not present yields Found=false rather than an error.
type GetCredentialResponse struct {
	Found bool   `json:"found"`
	Value []byte `json:"value,omitempty"`
}

// AddCredentialRequest is request model for storing a credential value.
type AddCredentialRequest struct {
	WalletIdentity

	// Name of the credential to store.
	Name string `json:"name"`

	// Value is the opaque credential payload.
	Value []byte `json:"value"`
}

// UpdateCredentialRequest is request model for overwriting a credential value.
type UpdateCredentialRequest = AddCredentialRequest

// RemoveCredentialRequest is request model for removing a credential.
type RemoveCredentialRequest struct {
	WalletIdentity

	// Name of the credential to remove.
	Name string `json:"name"`
}

// ListEnrollmentsRequest is request model for listing the enrollments of a wallet.
type ListEnrollmentsRequest struct {
	// WalletID of the wallet scope to list.
	WalletID string `json:"walletId"`
}

// ListEnrollmentsResponse is response model for listing the enrollments of a wallet.
type ListEnrollmentsResponse struct {
	// EnrollmentIDs of all records in the wallet, sorted lexicographically.
	EnrollmentIDs []string `json:"enrollmentIds"`
}
