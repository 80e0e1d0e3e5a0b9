/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securekey/fabric-wallet-go/component/storage/mem"
	"github.com/securekey/fabric-wallet-go/pkg/controller/command/wallet"
	spi "github.com/securekey/fabric-wallet-go/spi/storage"
)

const (
	sampleWalletID     = "org1-wallet"
	sampleEnrollmentID = "user1"
)

func TestNew(t *testing.T) {
	op := New(newMockProvider(mem.NewProvider()))
	require.NotNil(t, op)
	require.Len(t, op.GetRESTHandlers(), 7)
}

func TestOperation_ListCredentials(t *testing.T) {
	t.Run("successfully list credentials", func(t *testing.T) {
		op := New(newSeededProvider(t, map[string][]byte{
			"cert": []byte("pem"),
			"key":  []byte("pk"),
		}))

		rr := serveHTTP(t, op.ListCredentials, &wallet.ListCredentialsRequest{
			WalletIdentity: sampleIdentity(),
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var response wallet.ListCredentialsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.Equal(t, []string{"cert", "key"}, response.Names)
	})

	t.Run("missing wallet record", func(t *testing.T) {
		op := New(newMockProvider(mem.NewProvider()))

		rr := serveHTTP(t, op.ListCredentials, &wallet.ListCredentialsRequest{
			WalletIdentity: sampleIdentity(),
		})
		require.Equal(t, http.StatusInternalServerError, rr.Code)
		require.Contains(t, rr.Body.String(), spi.ErrRecordNotFound.Error())
	})

	t.Run("invalid request", func(t *testing.T) {
		op := New(newMockProvider(mem.NewProvider()))

		rr := httptest.NewRecorder()
		op.ListCredentials(rr, httptest.NewRequest(http.MethodPost, ListCredentialsPath,
			bytes.NewBufferString("--")))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestOperation_ContainsCredential(t *testing.T) {
	op := New(newSeededProvider(t, map[string][]byte{"cert": []byte("pem")}))

	rr := serveHTTP(t, op.ContainsCredential, &wallet.ContainsCredentialRequest{
		WalletIdentity: sampleIdentity(),
		Name:           "cert",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var response wallet.ContainsCredentialResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.True(t, response.Contains)
}

func TestOperation_GetCredential(t *testing.T) {
	t.Run("successfully get credential", func(t *testing.T) {
		op := New(newSeededProvider(t, map[string][]byte{"cert": []byte("pem")}))

		rr := serveHTTP(t, op.GetCredential, &wallet.GetCredentialRequest{
			WalletIdentity: sampleIdentity(),
			Name:           "cert",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var response wallet.GetCredentialResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.True(t, response.Found)
		require.Equal(t, []byte("pem"), response.Value)
	})

	t.Run("credential not present", func(t *testing.T) {
		op := New(newSeededProvider(t, nil))

		rr := serveHTTP(t, op.GetCredential, &wallet.GetCredentialRequest{
			WalletIdentity: sampleIdentity(),
			Name:           "cert",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var response wallet.GetCredentialResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.False(t, response.Found)
	})
}

func TestOperation_AddCredential(t *testing.T) {
	provider := newSeededProvider(t, nil)
	op := New(provider)

	rr := serveHTTP(t, op.AddCredential, &wallet.AddCredentialRequest{
		WalletIdentity: sampleIdentity(),
		Name:           "cert",
		Value:          []byte("pem"),
	})
	require.Equal(t, http.StatusOK, rr.Code)

	record, err := provider.StorageProvider().FindRecord(sampleWalletID, sampleEnrollmentID)
	require.NoError(t, err)
	require.Equal(t, []byte("pem"), record.Data["cert"])
}

func TestOperation_UpdateCredential(t *testing.T) {
	provider := newSeededProvider(t, map[string][]byte{"cert": []byte("old")})
	op := New(provider)

	rr := serveHTTP(t, op.UpdateCredential, &wallet.UpdateCredentialRequest{
		WalletIdentity: sampleIdentity(),
		Name:           "cert",
		Value:          []byte("new"),
	})
	require.Equal(t, http.StatusOK, rr.Code)

	record, err := provider.StorageProvider().FindRecord(sampleWalletID, sampleEnrollmentID)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), record.Data["cert"])
}

func TestOperation_RemoveCredential(t *testing.T) {
	provider := newSeededProvider(t, map[string][]byte{"cert": []byte("pem")})
	op := New(provider)

	rr := serveHTTP(t, op.RemoveCredential, &wallet.RemoveCredentialRequest{
		WalletIdentity: sampleIdentity(),
		Name:           "cert",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	record, err := provider.StorageProvider().FindRecord(sampleWalletID, sampleEnrollmentID)
	require.NoError(t, err)
	require.NotContains(t, record.Data, "cert")
}

func TestOperation_ListEnrollments(t *testing.T) {
	store := mem.NewProvider()

	for _, enrollmentID := range []string{"user2", "user1"} {
		require.NoError(t, store.SaveRecord(&spi.WalletRecord{
			WalletID:     sampleWalletID,
			EnrollmentID: enrollmentID,
		}))
	}

	op := New(newMockProvider(store))

	rr := serveHTTP(t, op.ListEnrollments, &wallet.ListEnrollmentsRequest{
		WalletID: sampleWalletID,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var response wallet.ListEnrollmentsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Equal(t, []string{"user1", "user2"}, response.EnrollmentIDs)
}

type mockProvider struct {
	store spi.Provider
}

func newMockProvider(store spi.Provider) *mockProvider {
	return &mockProvider{store: store}
}

func (p *mockProvider) StorageProvider() spi.Provider {
	return p.store
}

func newSeededProvider(t *testing.T, data map[string][]byte) *mockProvider {
	t.Helper()

	store := mem.NewProvider()

	require.NoError(t, store.SaveRecord(&spi.WalletRecord{
		WalletID:     sampleWalletID,
		EnrollmentID: sampleEnrollmentID,
		Data:         data,
	}))

	return newMockProvider(store)
}

func sampleIdentity() wallet.WalletIdentity {
	return wallet.WalletIdentity{WalletID: sampleWalletID, EnrollmentID: sampleEnrollmentID}
}

func serveHTTP(t *testing.T, handler http.HandlerFunc, request interface{}) *httptest.ResponseRecorder {
	t.Helper()

	requestBytes, err := json.Marshal(request)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodPost, OperationID, bytes.NewBuffer(requestBytes)))

	return rr
}
