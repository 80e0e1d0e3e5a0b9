/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package wallet provides a credential wallet for Hyperledger Fabric style identities: named,
// opaque credentials (certificates, private key material) stored per enrollment within a wallet,
// backed by a pluggable record store.
//
// Packages for end developer usage
//
// pkg/wallet: The wallet itself. A wallet is opened for a (wallet ID, enrollment ID) pair and
// exposes list/contains/get/add/update/remove operations over the named credentials of that
// enrollment.
// Reference: https://pkg.go.dev/github.com/securekey/fabric-wallet-go/pkg/wallet
//
// spi/storage: The record store contract that backing databases implement.
// Reference: https://pkg.go.dev/github.com/securekey/fabric-wallet-go/spi/storage
//
// component/storage/mem, component/storage/leveldb, component/storage/couchdb: Record store
// implementations.
//
// Basic workflow
//
//	1) Instantiate a storage provider (mem, leveldb or couchdb).
//	2) Create the wallet record for your enrollment through the provider.
//	3) Open a wallet with wallet.New, passing the provider and the identity pair.
//	4) Use the wallet operations to manage the enrollment's credentials.
//	5) Call provider.Close() to release resources.
package wallet
