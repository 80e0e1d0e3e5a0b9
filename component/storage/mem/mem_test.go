/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securekey/fabric-wallet-go/component/storage/mem"
	spi "github.com/securekey/fabric-wallet-go/spi/storage"
	storagetest "github.com/securekey/fabric-wallet-go/test/storage"
)

func TestCommon(t *testing.T) {
	provider := mem.NewProvider()

	storagetest.TestAll(t, provider)
}

func TestProviderPing(t *testing.T) {
	provider := mem.NewProvider()

	require.NoError(t, provider.Ping())
}

func TestRecordIsolation(t *testing.T) {
	provider := mem.NewProvider()

	err := provider.SaveRecord(&spi.WalletRecord{
		WalletID:     "wallet1",
		EnrollmentID: "user1",
		Data:         map[string][]byte{"cert": []byte("A")},
	})
	require.NoError(t, err)

	// mutating a fetched record must not affect the stored copy until it is saved back
	record, err := provider.FindRecord("wallet1", "user1")
	require.NoError(t, err)

	record.Data["key"] = []byte("B")

	stored, err := provider.FindRecord("wallet1", "user1")
	require.NoError(t, err)
	require.Len(t, stored.Data, 1)

	err = provider.SaveRecord(record)
	require.NoError(t, err)

	stored, err = provider.FindRecord("wallet1", "user1")
	require.NoError(t, err)
	require.Len(t, stored.Data, 2)
	require.Equal(t, []byte("B"), stored.Data["key"])
}

func TestClose(t *testing.T) {
	provider := mem.NewProvider()

	err := provider.SaveRecord(&spi.WalletRecord{
		WalletID:     "wallet1",
		EnrollmentID: "user1",
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	require.NoError(t, provider.Close())

	record, err := provider.FindRecord("wallet1", "user1")
	require.ErrorIs(t, err, spi.ErrRecordNotFound)
	require.Nil(t, record)
}
