/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "errors"

var (
	ErrUnknownDay      = errors.New("unknown day")
	ErrUnknownSide     = errors.New("unknown side")
	ErrUnknownPool     = errors.New("unknown pool")
	ErrUnknownFillMode = errors.New("unknown fill mode")
)
