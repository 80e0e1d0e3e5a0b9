/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldb

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

// Provider is a LevelDB implementation of the spi.Provider interface.
// All wallet records are kept in a single LevelDB database under composite wallet ID + enrollment ID keys,
// with the record JSON-marshalled as the value.
type Provider struct {
	db *leveldb.DB
}

// NewProvider instantiates a Provider backed by a LevelDB database at the given path.
// The database is created if it does not exist yet.
func NewProvider(dbPath string) (*Provider, error) {
	if dbPath == "" {
		return nil, errors.New("db path cannot be blank")
	}

	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", dbPath, err)
	}

	return &Provider{db: db}, nil
}

// FindRecord fetches the record for the given wallet ID + enrollment ID pair.
// If no such record exists, then an error wrapping spi.ErrRecordNotFound will be returned.
func (p *Provider) FindRecord(walletID, enrollmentID string) (*spi.WalletRecord, error) {
	if err := validateIDs(walletID, enrollmentID); err != nil {
		return nil, err
	}

	recordBytes, err := p.db.Get(recordKey(walletID, enrollmentID), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("leveldb store: %w", spi.ErrRecordNotFound)
		}

		return nil, fmt.Errorf("failed to get wallet record: %w", err)
	}

	record := &spi.WalletRecord{}

	err = json.Unmarshal(recordBytes, record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet record: %w", err)
	}

	return record, nil
}

// SaveRecord persists the full record, overwriting any existing record for the same identity pair.
func (p *Provider) SaveRecord(record *spi.WalletRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}

	if err := validateIDs(record.WalletID, record.EnrollmentID); err != nil {
		return err
	}

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet record: %w", err)
	}

	err = p.db.Put(recordKey(record.WalletID, record.EnrollmentID), recordBytes, nil)
	if err != nil {
		return fmt.Errorf("failed to store wallet record: %w", err)
	}

	return nil
}

// DeleteRecord deletes the record for the given wallet ID + enrollment ID pair.
// Deleting a record that does not exist is a no-op.
func (p *Provider) DeleteRecord(walletID, enrollmentID string) error {
	if err := validateIDs(walletID, enrollmentID); err != nil {
		return err
	}

	err := p.db.Delete(recordKey(walletID, enrollmentID), nil)
	if err != nil {
		return fmt.Errorf("failed to delete wallet record: %w", err)
	}

	return nil
}

// ListRecords returns the enrollment IDs of all records in the given wallet, sorted lexicographically.
func (p *Provider) ListRecords(walletID string) ([]string, error) {
	if walletID == "" {
		return nil, errors.New("wallet ID cannot be blank")
	}

	// The length encoded into record keys makes this prefix match the given wallet exactly,
	// even when wallet IDs contain the key separator.
	iter := p.db.NewIterator(util.BytesPrefix(walletKeyPrefix(walletID)), nil)
	defer iter.Release()

	var enrollmentIDs []string

	for iter.Next() {
		record := &spi.WalletRecord{}

		err := json.Unmarshal(iter.Value(), record)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal wallet record: %w", err)
		}

		enrollmentIDs = append(enrollmentIDs, record.EnrollmentID)
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate over wallet records: %w", err)
	}

	sort.Strings(enrollmentIDs)

	return enrollmentIDs, nil
}

// Close closes the underlying LevelDB database. Stored records are not deleted.
func (p *Provider) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("failed to close leveldb: %w", err)
	}

	return nil
}

// recordKey forms the database key for one identity pair. The wallet ID's length is encoded
// into the key so that IDs containing the separator cannot alias across pairs.
func recordKey(walletID, enrollmentID string) []byte {
	return []byte(fmt.Sprintf("%d_%s_%s", len(walletID), walletID, enrollmentID))
}

// walletKeyPrefix is the record key prefix shared by all records of one wallet.
func walletKeyPrefix(walletID string) []byte {
	return []byte(fmt.Sprintf("%d_%s_", len(walletID), walletID))
}

func validateIDs(walletID, enrollmentID string) error {
	if walletID == "" {
		return errors.New("wallet ID cannot be blank")
	}

	if enrollmentID == "" {
		return errors.New("enrollment ID cannot be blank")
	}

	return nil
}
