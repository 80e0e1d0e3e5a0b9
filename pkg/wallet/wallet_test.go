/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securekey/fabric-wallet-go/component/storage/mem"
	"github.com/securekey/fabric-wallet-go/component/storage/mock"
	"github.com/securekey/fabric-wallet-go/pkg/wallet"
	"github.com/securekey/fabric-wallet-go/spi/storage"
)

const (
	sampleWalletID     = "org1-wallet"
	sampleEnrollmentID = "user1"
)

var _ wallet.Wallet = (*wallet.StoreWallet)(nil)

func TestNew(t *testing.T) {
	w := wallet.New(mem.NewProvider(), sampleWalletID, sampleEnrollmentID)

	require.Equal(t, sampleWalletID, w.WalletID())
	require.Equal(t, sampleEnrollmentID, w.EnrollmentID())
}

func TestListSortsNames(t *testing.T) {
	w := newTestWallet(t, nil)

	names, err := w.List()
	require.NoError(t, err)
	require.Empty(t, names)

	for _, name := range []string{"signcert", "admincert", "keystore"} {
		require.NoError(t, w.Add(name, []byte(name+" value")))
	}

	names, err = w.List()
	require.NoError(t, err)
	require.Equal(t, []string{"admincert", "keystore", "signcert"}, names)
}

func TestContains(t *testing.T) {
	w := newTestWallet(t, nil)

	ok, err := w.Contains("cert")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, w.Add("cert", []byte("pem bytes")))

	ok, err = w.Contains("cert")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, w.Remove("cert"))

	ok, err = w.Contains("cert")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	w := newTestWallet(t, nil)

	value, err := w.Get("no-such-credential")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestAddOverwrites(t *testing.T) {
	w := newTestWallet(t, nil)

	require.NoError(t, w.Add("cert", []byte("v1")))
	require.NoError(t, w.Add("cert", []byte("v2")))

	value, err := w.Get("cert")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), value)
}

func TestUpdateMatchesAdd(t *testing.T) {
	provider := mem.NewProvider()

	added := newTestWalletWithProvider(t, provider, "added-wallet")
	updated := newTestWalletWithProvider(t, provider, "updated-wallet")

	// update does not require the name to already exist and produces the same record state as add
	require.NoError(t, added.Add("cert", []byte("pem bytes")))
	require.NoError(t, updated.Update("cert", []byte("pem bytes")))

	addedRecord, err := provider.FindRecord("added-wallet", sampleEnrollmentID)
	require.NoError(t, err)

	updatedRecord, err := provider.FindRecord("updated-wallet", sampleEnrollmentID)
	require.NoError(t, err)

	require.Equal(t, addedRecord.Data, updatedRecord.Data)
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := newTestWallet(t, nil)

	require.NoError(t, w.Add("cert", []byte("pem bytes")))
	require.NoError(t, w.Remove("cert"))

	value, err := w.Get("cert")
	require.NoError(t, err)
	require.Nil(t, value)

	require.NoError(t, w.Remove("cert"))
}

func TestRoundTripAcrossWalletInstances(t *testing.T) {
	provider := mem.NewProvider()

	w := newTestWalletWithProvider(t, provider, sampleWalletID)
	require.NoError(t, w.Add("cert", []byte("pem bytes")))

	// a freshly constructed wallet for the same identity pair sees the persisted credential
	reopened := wallet.New(provider, sampleWalletID, sampleEnrollmentID)

	value, err := reopened.Get("cert")
	require.NoError(t, err)
	require.Equal(t, []byte("pem bytes"), value)
}

func TestScenario(t *testing.T) {
	w := newTestWallet(t, map[string][]byte{"cert": []byte("A")})

	names, err := w.List()
	require.NoError(t, err)
	require.Equal(t, []string{"cert"}, names)

	require.NoError(t, w.Add("key", []byte("B")))

	names, err = w.List()
	require.NoError(t, err)
	require.Equal(t, []string{"cert", "key"}, names)

	require.NoError(t, w.Remove("cert"))

	ok, err := w.Contains("cert")
	require.NoError(t, err)
	require.False(t, ok)

	value, err := w.Get("cert")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestMissingRecordFailsEveryOperation(t *testing.T) {
	w := wallet.New(mem.NewProvider(), sampleWalletID, sampleEnrollmentID)

	_, err := w.List()
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	_, err = w.Contains("cert")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	_, err = w.Get("cert")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	err = w.Add("cert", []byte("pem bytes"))
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	err = w.Update("cert", []byte("pem bytes"))
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	err = w.Remove("cert")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestStoreFailurePropagation(t *testing.T) {
	t.Run("Fetch failure", func(t *testing.T) {
		provider := mock.NewProvider()
		provider.ErrFindRecord = errors.New("find error")

		w := wallet.New(provider, sampleWalletID, sampleEnrollmentID)

		_, err := w.List()
		require.ErrorContains(t, err, "find error")
	})

	t.Run("Save failure", func(t *testing.T) {
		provider := mock.NewProvider()
		require.NoError(t, provider.SaveRecord(&storage.WalletRecord{
			WalletID:     sampleWalletID,
			EnrollmentID: sampleEnrollmentID,
			Data:         map[string][]byte{},
		}))

		provider.ErrSaveRecord = errors.New("save error")

		w := wallet.New(provider, sampleWalletID, sampleEnrollmentID)

		err := w.Add("cert", []byte("pem bytes"))
		require.ErrorContains(t, err, "save error")

		err = w.Remove("cert")
		require.ErrorContains(t, err, "save error")
	})
}

func TestAddToRecordWithNilData(t *testing.T) {
	provider := mem.NewProvider()

	err := provider.SaveRecord(&storage.WalletRecord{
		WalletID:     sampleWalletID,
		EnrollmentID: sampleEnrollmentID,
	})
	require.NoError(t, err)

	w := wallet.New(provider, sampleWalletID, sampleEnrollmentID)

	require.NoError(t, w.Add("cert", []byte("pem bytes")))

	value, err := w.Get("cert")
	require.NoError(t, err)
	require.Equal(t, []byte("pem bytes"), value)
}

func newTestWallet(t *testing.T, data map[string][]byte) *wallet.StoreWallet {
	t.Helper()

	provider := mem.NewProvider()

	if data == nil {
		data = map[string][]byte{}
	}

	err := provider.SaveRecord(&storage.WalletRecord{
		WalletID:     sampleWalletID,
		EnrollmentID: sampleEnrollmentID,
		Data:         data,
	})
	require.NoError(t, err)

	return wallet.New(provider, sampleWalletID, sampleEnrollmentID)
}

func newTestWalletWithProvider(t *testing.T, provider storage.Provider, walletID string) *wallet.StoreWallet {
	t.Helper()

	err := provider.SaveRecord(&storage.WalletRecord{
		WalletID:     walletID,
		EnrollmentID: sampleEnrollmentID,
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	return wallet.New(provider, walletID, sampleEnrollmentID)
}
