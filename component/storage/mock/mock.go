/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package mock provides a mock wallet record provider, supporting most of the in-memory provider's
// behaviour with the added ability to override return values.
package mock

import (
	"errors"
	"fmt"
	"sort"

	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

// Provider mock wallet record provider.
type Provider struct {
	Records map[string]*spi.WalletRecord

	ErrFindRecord   error
	ErrSaveRecord   error
	ErrDeleteRecord error
	ErrListRecords  error
	ErrClose        error
}

// NewProvider returns a new mock provider instance.
func NewProvider() *Provider {
	return &Provider{Records: make(map[string]*spi.WalletRecord)}
}

// FindRecord fetches the record based on the wallet ID + enrollment ID pair.
func (p *Provider) FindRecord(walletID, enrollmentID string) (*spi.WalletRecord, error) {
	if p.ErrFindRecord != nil {
		return nil, p.ErrFindRecord
	}

	record, ok := p.Records[recordKey(walletID, enrollmentID)]
	if !ok {
		return nil, fmt.Errorf("mock store: %w", spi.ErrRecordNotFound)
	}

	return record, nil
}

// SaveRecord stores the record.
func (p *Provider) SaveRecord(record *spi.WalletRecord) error {
	if p.ErrSaveRecord != nil {
		return p.ErrSaveRecord
	}

	if record == nil {
		return errors.New("record cannot be nil")
	}

	p.Records[recordKey(record.WalletID, record.EnrollmentID)] = record

	return nil
}

// DeleteRecord deletes the record for the given wallet ID + enrollment ID pair.
func (p *Provider) DeleteRecord(walletID, enrollmentID string) error {
	if p.ErrDeleteRecord != nil {
		return p.ErrDeleteRecord
	}

	delete(p.Records, recordKey(walletID, enrollmentID))

	return nil
}

// ListRecords returns the enrollment IDs of all records in the given wallet.
func (p *Provider) ListRecords(walletID string) ([]string, error) {
	if p.ErrListRecords != nil {
		return nil, p.ErrListRecords
	}

	var enrollmentIDs []string

	for _, record := range p.Records {
		if record.WalletID == walletID {
			enrollmentIDs = append(enrollmentIDs, record.EnrollmentID)
		}
	}

	sort.Strings(enrollmentIDs)

	return enrollmentIDs, nil
}

// Close closes the provider.
func (p *Provider) Close() error {
	return p.ErrClose
}

// recordKey forms the map key for one identity pair. The wallet ID's length is encoded into
// the key so that IDs containing the separator cannot alias across pairs.
func recordKey(walletID, enrollmentID string) string {
	return fmt.Sprintf("%d_%s_%s", len(walletID), walletID, enrollmentID)
}
