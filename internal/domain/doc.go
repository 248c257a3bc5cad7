// Package domain contains the error vocabulary shared by hostctl's layers.
//
// It has no dependencies on infrastructure concerns. Adapters translate
// operating system failures into these kinds so callers can branch on
// them with errors.Is regardless of platform.
package domain
