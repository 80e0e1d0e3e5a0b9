/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet implements a named-credential wallet for one enrolled identity.
//
// A Wallet is a thin translation layer over a single wallet record held by a
// spi/storage.Provider: every operation re-fetches the record for its
// (wallet ID, enrollment ID) pair, performs a read or mutation on the record's
// name -> credential mapping and, for writes, persists the record back. The
// wallet holds no state of its own beyond the three references it is
// constructed with, caches nothing between calls and performs no retries -
// storage failures and missing-record conditions propagate to the caller.
//
// The fetch-mutate-save sequence is not atomic. Two operations racing on the
// same identity pair are last-writer-wins; callers are expected to be the
// single writer for the identities they manage.
package wallet

import (
	"fmt"
	"sort"

	"github.com/securekey/fabric-wallet-go/spi/storage"
)

// Wallet is the credential collection of one enrolled identity.
type Wallet interface {
	// List returns the names of all credentials in the wallet, sorted lexicographically.
	List() ([]string, error)

	// Contains reports whether a credential with the given name is present.
	Contains(name string) (bool, error)

	// Get returns the credential value stored under the given name.
	// If no credential with that name is present, a nil value is returned.
	// This is not considered an error.
	Get(name string) ([]byte, error)

	// Add stores the given credential value under the given name. If a credential with that
	// name is already present, then it is overwritten silently.
	Add(name string, value []byte) error

	// Update stores the given credential value under the given name, overwriting any
	// existing value. Update and Add are interchangeable - neither requires the name to
	// already be present.
	Update(name string, value []byte) error

	// Remove deletes the credential with the given name. Removing a name that is not
	// present is a no-op, not an error.
	Remove(name string) error
}

// StoreWallet is a Wallet backed by a wallet record provider.
type StoreWallet struct {
	provider     storage.Provider
	walletID     string
	enrollmentID string
}

// New returns a StoreWallet over the record held by the given provider for the
// wallet ID + enrollment ID pair. The record itself must already exist - record
// creation is the hosting application's responsibility.
func New(provider storage.Provider, walletID, enrollmentID string) *StoreWallet {
	return &StoreWallet{provider: provider, walletID: walletID, enrollmentID: enrollmentID}
}

// WalletID returns the wallet scope this wallet was opened for.
func (s *StoreWallet) WalletID() string {
	return s.walletID
}

// EnrollmentID returns the enrolled identity this wallet was opened for.
func (s *StoreWallet) EnrollmentID() string {
	return s.enrollmentID
}

// List returns the names of all credentials in the wallet, sorted lexicographically.
func (s *StoreWallet) List() ([]string, error) {
	record, err := s.fetchRecord()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(record.Data))

	for name := range record.Data {
		names = append(names, name)
	}

	sort.Strings(names)

	return names, nil
}

// Contains reports whether a credential with the given name is present.
func (s *StoreWallet) Contains(name string) (bool, error) {
	record, err := s.fetchRecord()
	if err != nil {
		return false, err
	}

	_, ok := record.Data[name]

	return ok, nil
}

// Get returns the credential value stored under the given name.
// If no credential with that name is present, a nil value is returned. This is not
// considered an error.
func (s *StoreWallet) Get(name string) ([]byte, error) {
	record, err := s.fetchRecord()
	if err != nil {
		return nil, err
	}

	return record.Data[name], nil
}

// Add stores the given credential value under the given name, overwriting silently if a
// credential with that name is already present.
func (s *StoreWallet) Add(name string, value []byte) error {
	record, err := s.fetchRecord()
	if err != nil {
		return err
	}

	if record.Data == nil {
		record.Data = make(map[string][]byte)
	}

	record.Data[name] = value

	err = s.provider.SaveRecord(record)
	if err != nil {
		return fmt.Errorf("failed to save wallet record: %w", err)
	}

	return nil
}

// Update stores the given credential value under the given name.
// Update shares Add's upsert semantics - there is no must-already-exist check.
func (s *StoreWallet) Update(name string, value []byte) error {
	return s.Add(name, value)
}

// Remove deletes the credential with the given name, persisting the record either way.
// Removing a name that is not present is a no-op, not an error.
func (s *StoreWallet) Remove(name string) error {
	record, err := s.fetchRecord()
	if err != nil {
		return err
	}

	delete(record.Data, name)

	err = s.provider.SaveRecord(record)
	if err != nil {
		return fmt.Errorf("failed to save wallet record: %w", err)
	}

	return nil
}

func (s *StoreWallet) fetchRecord() (*storage.WalletRecord, error) {
	record, err := s.provider.FindRecord(s.walletID, s.enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet record: %w", err)
	}

	return record, nil
}
