// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package progress keeps the durable record of a learner's progress. The
// record outlives playground sessions and is kept in an injected key/value
// store, so the medium holding it can be chosen by the host.
package progress

import "github.com/Fantom-foundation/Playground/go/chain"

//go:generate mockgen -source store.go -destination store_mock.go -package progress

const (
	ErrNotFound = chain.ConstError("key not found")
	ErrClosed   = chain.ConstError("store closed")
)

// Store is a minimal durable key/value store. Get returns ErrNotFound for
// keys that were never written.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}
