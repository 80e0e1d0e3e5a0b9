/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

var (
	errBlankWalletID     = errors.New("wallet ID cannot be blank")
	errBlankEnrollmentID = errors.New("enrollment ID cannot be blank")
)

// Provider represents an in-memory implementation of the spi.Provider interface.
// Records are copied on the way in and on the way out, so mutations made to a fetched
// record are not visible to other callers until the record is saved back.
type Provider struct {
	records map[string]*spi.WalletRecord
	lock    sync.RWMutex
}

// NewProvider instantiates a new in-memory wallet record Provider.
func NewProvider() *Provider {
	return &Provider{records: make(map[string]*spi.WalletRecord)}
}

// FindRecord fetches the record for the given wallet ID + enrollment ID pair.
// If no such record exists, then an error wrapping spi.ErrRecordNotFound will be returned.
func (p *Provider) FindRecord(walletID, enrollmentID string) (*spi.WalletRecord, error) {
	if err := validateIDs(walletID, enrollmentID); err != nil {
		return nil, err
	}

	p.lock.RLock()
	defer p.lock.RUnlock()

	record, ok := p.records[recordKey(walletID, enrollmentID)]
	if !ok {
		return nil, fmt.Errorf("in-memory store: %w", spi.ErrRecordNotFound)
	}

	return copyRecord(record), nil
}

// SaveRecord persists the full record, overwriting any existing record for the same identity pair.
func (p *Provider) SaveRecord(record *spi.WalletRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}

	if err := validateIDs(record.WalletID, record.EnrollmentID); err != nil {
		return err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	p.records[recordKey(record.WalletID, record.EnrollmentID)] = copyRecord(record)

	return nil
}

// DeleteRecord deletes the record for the given wallet ID + enrollment ID pair.
// Deleting a record that does not exist is a no-op.
func (p *Provider) DeleteRecord(walletID, enrollmentID string) error {
	if err := validateIDs(walletID, enrollmentID); err != nil {
		return err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	delete(p.records, recordKey(walletID, enrollmentID))

	return nil
}

// ListRecords returns the enrollment IDs of all records in the given wallet, sorted lexicographically.
func (p *Provider) ListRecords(walletID string) ([]string, error) {
	if walletID == "" {
		return nil, errBlankWalletID
	}

	p.lock.RLock()
	defer p.lock.RUnlock()

	var enrollmentIDs []string

	for _, record := range p.records {
		if record.WalletID == walletID {
			enrollmentIDs = append(enrollmentIDs, record.EnrollmentID)
		}
	}

	sort.Strings(enrollmentIDs)

	return enrollmentIDs, nil
}

// Close clears all records held by this provider.
func (p *Provider) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.records = make(map[string]*spi.WalletRecord)

	return nil
}

// Ping always returns nil. It's here just to allow the in-memory provider to stand in for remote
// implementations that report connectivity.
func (p *Provider) Ping() error {
	return nil
}

// recordKey forms the map key for one identity pair. The wallet ID's length is encoded into
// the key so that IDs containing the separator cannot alias across pairs.
func recordKey(walletID, enrollmentID string) string {
	return fmt.Sprintf("%d_%s_%s", len(walletID), walletID, enrollmentID)
}

func validateIDs(walletID, enrollmentID string) error {
	if walletID == "" {
		return errBlankWalletID
	}

	if enrollmentID == "" {
		return errBlankEnrollmentID
	}

	return nil
}

func copyRecord(record *spi.WalletRecord) *spi.WalletRecord {
	recordCopy := &spi.WalletRecord{
		WalletID:     record.WalletID,
		EnrollmentID: record.EnrollmentID,
		Data:         make(map[string][]byte, len(record.Data)),
	}

	for name, value := range record.Data {
		valueCopy := make([]byte, len(value))
		copy(valueCopy, value)

		recordCopy.Data[name] = valueCopy
	}

	return recordCopy
}
