/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"errors"
)

// ErrRecordNotFound is returned when no wallet record exists for a given wallet ID + enrollment ID pair.
var ErrRecordNotFound = errors.New("wallet record not found")

// WalletRecord is the persisted unit holding all credentials for one wallet ID + enrollment ID pair.
// Credential values are opaque to the storage layer - certificates, private key material or anything
// else the hosting application chooses to store.
type WalletRecord struct {
	// WalletID identifies the enclosing wallet scope.
	WalletID string `json:"walletId"`
	// EnrollmentID identifies the enrolled identity within the wallet.
	EnrollmentID string `json:"enrollmentId"`
	// Data maps credential names to credential values.
	Data map[string][]byte `json:"data"`
}

// Provider represents a wallet record store.
// At most one WalletRecord exists per (wallet ID, enrollment ID) pair. Record creation and removal are
// hosting application responsibilities - the wallet operations in pkg/wallet only ever fetch and save
// records that already exist.
type Provider interface {
	// FindRecord fetches the record for the given wallet ID + enrollment ID pair.
	// If no such record exists, then an error wrapping ErrRecordNotFound will be returned.
	// If walletID or enrollmentID is blank, then an error will be returned.
	FindRecord(walletID, enrollmentID string) (*WalletRecord, error)

	// SaveRecord persists the full record (including its Data mapping) back to the store.
	// If a record already exists for the same identity pair, then it is overwritten silently -
	// there is no version token, so concurrent writers are last-writer-wins.
	// If the record is nil, or its wallet ID or enrollment ID is blank, then an error will be returned.
	SaveRecord(record *WalletRecord) error

	// DeleteRecord deletes the record for the given wallet ID + enrollment ID pair.
	// Deleting a record that does not exist is a no-op, not an error.
	// If walletID or enrollmentID is blank, then an error will be returned.
	DeleteRecord(walletID, enrollmentID string) error

	// ListRecords returns the enrollment IDs of all records in the given wallet,
	// sorted lexicographically. An unknown wallet ID yields an empty result, not an error.
	// If walletID is blank, then an error will be returned.
	ListRecords(walletID string) ([]string, error)

	// Close closes the provider. For persistent implementations, this does not delete any data
	// in the underlying databases.
	Close() error
}
