/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

// Package storage contains common tests for wallet record provider implementations.
// These tests are intended to demonstrate the expected behaviour as defined in the documentation
// above the spi.Provider interface declaration.
package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

// TestAll tests the given provider against all of the tests in this file.
func TestAll(t *testing.T, provider spi.Provider) {
	t.Run("Find and save record", func(t *testing.T) {
		TestProviderFindSaveRecord(t, provider)
	})
	t.Run("Delete record", func(t *testing.T) {
		TestProviderDeleteRecord(t, provider)
	})
	t.Run("List records", func(t *testing.T) {
		TestProviderListRecords(t, provider)
	})
	t.Run("Input validation", func(t *testing.T) {
		TestProviderInputValidation(t, provider)
	})
	t.Run("Identity pair isolation", func(t *testing.T) {
		TestProviderIdentityPairIsolation(t, provider)
	})
}

// TestProviderFindSaveRecord tests spi.Provider.FindRecord and spi.Provider.SaveRecord behaviour.
func TestProviderFindSaveRecord(t *testing.T, provider spi.Provider) {
	walletID := randomID()
	enrollmentID := randomID()

	record, err := provider.FindRecord(walletID, enrollmentID)
	require.ErrorIs(t, err, spi.ErrRecordNotFound)
	require.Nil(t, record)

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     walletID,
		EnrollmentID: enrollmentID,
		Data:         map[string][]byte{"cert": []byte("pem bytes")},
	})
	require.NoError(t, err)

	record, err = provider.FindRecord(walletID, enrollmentID)
	require.NoError(t, err)
	require.Equal(t, walletID, record.WalletID)
	require.Equal(t, enrollmentID, record.EnrollmentID)
	require.Equal(t, []byte("pem bytes"), record.Data["cert"])

	// save silently overwrites the existing record
	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     walletID,
		EnrollmentID: enrollmentID,
		Data:         map[string][]byte{"key": []byte("new key bytes")},
	})
	require.NoError(t, err)

	record, err = provider.FindRecord(walletID, enrollmentID)
	require.NoError(t, err)
	require.Len(t, record.Data, 1)
	require.Equal(t, []byte("new key bytes"), record.Data["key"])

	// a record under a different enrollment ID is untouched by the overwrite
	otherEnrollmentID := randomID()

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     walletID,
		EnrollmentID: otherEnrollmentID,
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	record, err = provider.FindRecord(walletID, otherEnrollmentID)
	require.NoError(t, err)
	require.Empty(t, record.Data)
}

// TestProviderDeleteRecord tests spi.Provider.DeleteRecord behaviour.
func TestProviderDeleteRecord(t *testing.T, provider spi.Provider) {
	walletID := randomID()
	enrollmentID := randomID()

	// deleting a record that was never created is a no-op
	err := provider.DeleteRecord(walletID, enrollmentID)
	require.NoError(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     walletID,
		EnrollmentID: enrollmentID,
		Data:         map[string][]byte{"cert": []byte("pem bytes")},
	})
	require.NoError(t, err)

	err = provider.DeleteRecord(walletID, enrollmentID)
	require.NoError(t, err)

	record, err := provider.FindRecord(walletID, enrollmentID)
	require.ErrorIs(t, err, spi.ErrRecordNotFound)
	require.Nil(t, record)

	// deleting twice is also a no-op
	err = provider.DeleteRecord(walletID, enrollmentID)
	require.NoError(t, err)
}

// TestProviderListRecords tests spi.Provider.ListRecords behaviour.
func TestProviderListRecords(t *testing.T, provider spi.Provider) {
	walletID := randomID()

	enrollmentIDs, err := provider.ListRecords(walletID)
	require.NoError(t, err)
	require.Empty(t, enrollmentIDs)

	for _, enrollmentID := range []string{"user3", "user1", "user2"} {
		err = provider.SaveRecord(&spi.WalletRecord{
			WalletID:     walletID,
			EnrollmentID: enrollmentID,
			Data:         map[string][]byte{},
		})
		require.NoError(t, err)
	}

	enrollmentIDs, err = provider.ListRecords(walletID)
	require.NoError(t, err)
	require.Equal(t, []string{"user1", "user2", "user3"}, enrollmentIDs)

	// records in other wallets are not listed
	otherWalletID := randomID()

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     otherWalletID,
		EnrollmentID: "user4",
		Data:         map[string][]byte{},
	})
	require.NoError(t, err)

	enrollmentIDs, err = provider.ListRecords(walletID)
	require.NoError(t, err)
	require.Equal(t, []string{"user1", "user2", "user3"}, enrollmentIDs)
}

// TestProviderInputValidation tests blank identifier handling across all provider operations.
func TestProviderInputValidation(t *testing.T, provider spi.Provider) {
	record, err := provider.FindRecord("", randomID())
	require.Error(t, err)
	require.Nil(t, record)

	record, err = provider.FindRecord(randomID(), "")
	require.Error(t, err)
	require.Nil(t, record)

	err = provider.SaveRecord(nil)
	require.Error(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{EnrollmentID: randomID()})
	require.Error(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{WalletID: randomID()})
	require.Error(t, err)

	err = provider.DeleteRecord("", randomID())
	require.Error(t, err)

	err = provider.DeleteRecord(randomID(), "")
	require.Error(t, err)

	enrollmentIDs, err := provider.ListRecords("")
	require.Error(t, err)
	require.Nil(t, enrollmentIDs)
}

// TestProviderIdentityPairIsolation tests that distinct identity pairs never share a record,
// including pairs whose IDs contain characters a provider may use as a key separator.
func TestProviderIdentityPairIsolation(t *testing.T, provider spi.Provider) {
	base := randomID()

	// both pairs concatenate to the same "walletID_enrollmentID" string
	err := provider.SaveRecord(&spi.WalletRecord{
		WalletID:     base + "_org",
		EnrollmentID: "user1",
		Data:         map[string][]byte{"cert": []byte("first pair")},
	})
	require.NoError(t, err)

	err = provider.SaveRecord(&spi.WalletRecord{
		WalletID:     base,
		EnrollmentID: "org_user1",
		Data:         map[string][]byte{"cert": []byte("second pair")},
	})
	require.NoError(t, err)

	record, err := provider.FindRecord(base+"_org", "user1")
	require.NoError(t, err)
	require.Equal(t, base+"_org", record.WalletID)
	require.Equal(t, "user1", record.EnrollmentID)
	require.Equal(t, []byte("first pair"), record.Data["cert"])

	record, err = provider.FindRecord(base, "org_user1")
	require.NoError(t, err)
	require.Equal(t, base, record.WalletID)
	require.Equal(t, "org_user1", record.EnrollmentID)
	require.Equal(t, []byte("second pair"), record.Data["cert"])

	// each record is listed under its own wallet only
	enrollmentIDs, err := provider.ListRecords(base + "_org")
	require.NoError(t, err)
	require.Equal(t, []string{"user1"}, enrollmentIDs)

	enrollmentIDs, err = provider.ListRecords(base)
	require.NoError(t, err)
	require.Equal(t, []string{"org_user1"}, enrollmentIDs)

	// deleting one pair leaves the other intact
	err = provider.DeleteRecord(base, "org_user1")
	require.NoError(t, err)

	record, err = provider.FindRecord(base+"_org", "user1")
	require.NoError(t, err)
	require.Equal(t, []byte("first pair"), record.Data["cert"])
}

func randomID() string {
	return uuid.New().String()
}
