/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securekey/fabric-wallet-go/component/storage/leveldb"
	spi "github.com/securekey/fabric-wallet-go/spi/storage"
	storagetest "github.com/securekey/fabric-wallet-go/test/storage"
)

func TestCommon(t *testing.T) {
	provider, err := leveldb.NewProvider(t.TempDir())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, provider.Close())
	}()

	storagetest.TestAll(t, provider)
}

func TestNewProviderBlankPath(t *testing.T) {
	provider, err := leveldb.NewProvider("")
	require.EqualError(t, err, "db path cannot be blank")
	require.Nil(t, provider)
}

func TestRecordsSurviveReopen(t *testing.T) {
	dbPath := t.TempDir()

	provider, err := leveldb.NewProvider(dbPath)
	require.NoError(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     "wallet1",
		EnrollmentID: "user1",
		Data:         map[string][]byte{"cert": []byte("pem bytes")},
	})
	require.NoError(t, err)

	require.NoError(t, provider.Close())

	provider, err = leveldb.NewProvider(dbPath)
	require.NoError(t, err)

	defer func() {
		require.NoError(t, provider.Close())
	}()

	record, err := provider.FindRecord("wallet1", "user1")
	require.NoError(t, err)
	require.Equal(t, []byte("pem bytes"), record.Data["cert"])
}

func TestListRecordsWalletIDWithSeparator(t *testing.T) {
	provider, err := leveldb.NewProvider(t.TempDir())
	require.NoError(t, err)

	defer func() {
		require.NoError(t, provider.Close())
	}()

	// "org1_wallet" record keys contain "org1" followed by the key separator - the list
	// for "org1" must not pick up the other wallet's records
	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     "org1",
		EnrollmentID: "user1",
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     "org1_wallet",
		EnrollmentID: "user2",
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	enrollmentIDs, err := provider.ListRecords("org1")
	require.NoError(t, err)
	require.Equal(t, []string{"user1"}, enrollmentIDs)
}
