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

// Phase is the step a session is currently busy with.
type Phase int

const (
	Idle Phase = iota
	Compiling
	Deploying
	Executing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Compiling:
		return "compiling"
	case Deploying:
		return "deploying"
	case Executing:
		return "executing"
	}
	return "unknown"
}
