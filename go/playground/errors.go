// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package playground

import "github.com/Fantom-foundation/Playground/go/chain"

const (
	// ErrValidation reports source rejected by the compiler.
	ErrValidation = chain.ConstError("validation error")

	// ErrPrecondition reports an operation started before the contracts it
	// needs were deployed.
	ErrPrecondition = chain.ConstError("precondition not met")

	// ErrInternal reports an operation aborted by an unexpected failure.
	ErrInternal = chain.ConstError("internal failure")

	ErrUnknownVariant = chain.ConstError("unknown variant")
)
