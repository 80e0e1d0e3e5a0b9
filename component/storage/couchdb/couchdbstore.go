/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package couchdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "github.com/go-kivik/couchdb/v3" // The CouchDB driver
	kivik "github.com/go-kivik/kivik/v3"

	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

const (
	couchDBDriverName = "couch"
	designDocPrefix   = "_design"
)

var errDatabaseNotFound = errors.New("database not found")

// Option configures the CouchDB provider.
type Option func(opts *Provider)

// WithDBPrefix is an option for adding a prefix to all created database names.
func WithDBPrefix(dbPrefix string) Option {
	return func(opts *Provider) {
		opts.dbPrefix = dbPrefix
	}
}

// Provider represents a CouchDB implementation of the spi.Provider interface.
// Each wallet maps to one CouchDB database and each enrollment to one document within it.
// CouchDB revision handling stays internal: the current revision is re-read before every save,
// so concurrent writers remain last-writer-wins with no conflict surfaced to the wallet layer.
type Provider struct {
	hostURL  string
	client   *kivik.Client
	dbPrefix string
	dbs      map[string]*kivik.DB
	lock     sync.RWMutex
}

// walletDoc is the CouchDB document shape for one wallet record.
type walletDoc struct {
	ID           string            `json:"_id"`
	Rev          string            `json:"_rev,omitempty"`
	WalletID     string            `json:"walletId"`
	EnrollmentID string            `json:"enrollmentId"`
	Data         map[string][]byte `json:"data"`
}

// NewProvider instantiates a Provider for the CouchDB server at hostURL.
// Include the username:password@ text in hostURL if the server requires authentication.
func NewProvider(hostURL string, opts ...Option) (*Provider, error) {
	if hostURL == "" {
		return nil, errors.New("hostURL for new CouchDB provider can't be blank")
	}

	client, err := kivik.New(couchDBDriverName, hostURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create CouchDB client: %w", err)
	}

	p := &Provider{hostURL: hostURL, client: client, dbs: make(map[string]*kivik.DB)}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Ping verifies that the CouchDB server is reachable.
func (p *Provider) Ping() error {
	_, err := p.client.Ping(context.Background())
	if err != nil {
		return fmt.Errorf("failed to ping CouchDB server at %s: %w", p.hostURL, err)
	}

	return nil
}

// FindRecord fetches the record for the given wallet ID + enrollment ID pair.
// If no such record exists, then an error wrapping spi.ErrRecordNotFound will be returned.
func (p *Provider) FindRecord(walletID, enrollmentID string) (*spi.WalletRecord, error) {
	if err := validateIDs(walletID, enrollmentID); err != nil {
		return nil, err
	}

	db, err := p.database(walletID, false)
	if err != nil {
		if errors.Is(err, errDatabaseNotFound) {
			return nil, fmt.Errorf("couchdb store: %w", spi.ErrRecordNotFound)
		}

		return nil, err
	}

	doc := walletDoc{}

	err = db.Get(context.Background(), enrollmentID).ScanDoc(&doc)
	if err != nil {
		if kivik.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("couchdb store: %w", spi.ErrRecordNotFound)
		}

		return nil, fmt.Errorf("failed to get wallet record: %w", err)
	}

	data := doc.Data
	if data == nil {
		data = make(map[string][]byte)
	}

	return &spi.WalletRecord{WalletID: doc.WalletID, EnrollmentID: doc.EnrollmentID, Data: data}, nil
}

// SaveRecord persists the full record, overwriting any existing document for the same identity pair.
// The wallet's database is created on first save.
func (p *Provider) SaveRecord(record *spi.WalletRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}

	if err := validateIDs(record.WalletID, record.EnrollmentID); err != nil {
		return err
	}

	db, err := p.database(record.WalletID, true)
	if err != nil {
		return err
	}

	doc := walletDoc{
		ID:           record.EnrollmentID,
		WalletID:     record.WalletID,
		EnrollmentID: record.EnrollmentID,
		Data:         record.Data,
	}

	rev, err := p.currentRevID(db, record.EnrollmentID)
	if err != nil {
		return err
	}

	doc.Rev = rev

	_, err = db.Put(context.Background(), doc.ID, doc)
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

	db, err := p.database(walletID, false)
	if err != nil {
		if errors.Is(err, errDatabaseNotFound) {
			return nil
		}

		return err
	}

	rev, err := p.currentRevID(db, enrollmentID)
	if err != nil {
		return err
	}

	if rev == "" {
		return nil
	}

	_, err = db.Delete(context.Background(), enrollmentID, rev)
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

	db, err := p.database(walletID, false)
	if err != nil {
		if errors.Is(err, errDatabaseNotFound) {
			return nil, nil
		}

		return nil, err
	}

	rows, err := db.AllDocs(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet records: %w", err)
	}

	defer func() {
		_ = rows.Close() //nolint:errcheck
	}()

	var enrollmentIDs []string

	for rows.Next() {
		// The returned key is a raw JSON string. It needs to be unescaped:
		key, err := strconv.Unquote(rows.Key())
		if err != nil {
			return nil, fmt.Errorf("failed to unquote wallet record key: %w", err)
		}

		if strings.HasPrefix(key, designDocPrefix) {
			continue
		}

		enrollmentIDs = append(enrollmentIDs, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over wallet records: %w", err)
	}

	sort.Strings(enrollmentIDs)

	return enrollmentIDs, nil
}

// Close closes the provider. Stored records are not deleted.
func (p *Provider) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, db := range p.dbs {
		if err := db.Close(context.Background()); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	p.dbs = make(map[string]*kivik.DB)

	if err := p.client.Close(context.Background()); err != nil {
		return fmt.Errorf("failed to close CouchDB client: %w", err)
	}

	return nil
}

// database returns the kivik handle for the given wallet's database, creating the database first if
// create is set. If the database does not exist and create is not set, errDatabaseNotFound is returned.
func (p *Provider) database(walletID string, create bool) (*kivik.DB, error) {
	dbName := p.databaseName(walletID)

	p.lock.RLock()
	db, cached := p.dbs[dbName]
	p.lock.RUnlock()

	if cached {
		return db, nil
	}

	exists, err := p.client.DBExists(context.Background(), dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to check database existence: %w", err)
	}

	if !exists {
		if !create {
			return nil, errDatabaseNotFound
		}

		err = p.client.CreateDB(context.Background(), dbName)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	db = p.client.DB(context.Background(), dbName)
	if db.Err() != nil {
		return nil, fmt.Errorf("failed to open database: %w", db.Err())
	}

	p.lock.Lock()
	p.dbs[dbName] = db
	p.lock.Unlock()

	return db, nil
}

// databaseName maps a wallet ID to its CouchDB database name. CouchDB database names must
// match [a-z][a-z0-9_$()+/-]*, so the name starts with a fixed letter and every byte outside
// the safe subset of that alphabet (uppercase letters included) is escaped as $<hex>. The
// escaping keeps the mapping injective - distinct wallet IDs never share a database.
func (p *Provider) databaseName(walletID string) string {
	name := walletID
	if p.dbPrefix != "" {
		name = p.dbPrefix + "_" + walletID
	}

	var b strings.Builder

	b.WriteByte('w')

	for _, c := range []byte(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '_', c == '(', c == ')', c == '+', c == '-':
			b.WriteByte(c)
		default:
			// covers '$' itself, so escaped bytes cannot be forged
			fmt.Fprintf(&b, "$%02x", c)
		}
	}

	return b.String()
}

// currentRevID returns the current revision of the given document, or a blank string if the
// document does not exist.
func (p *Provider) currentRevID(db *kivik.DB, docID string) (string, error) {
	doc := walletDoc{}

	err := db.Get(context.Background(), docID).ScanDoc(&doc)
	if err != nil {
		if kivik.StatusCode(err) == http.StatusNotFound {
			return "", nil
		}

		return "", fmt.Errorf("failed to get current revision ID: %w", err)
	}

	return doc.Rev, nil
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
