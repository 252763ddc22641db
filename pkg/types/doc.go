// SPDX-License-Identifier: MPL-2.0

// Package types provides small value types shared between gg packages.
package types
