// SPDX-License-Identifier: MPL-2.0

// Package jsonflex decodes JSON values that may be written either as a bare
// string or as a structured object.
//
// A target type opts in by implementing DecodeString on its pointer type.
// Decode performs one discriminated step per value: the scalar form is tried
// first, and on a JSON type mismatch the value is decoded as an object with
// the usual encoding/json rules. Map applies that step to every entry of a
// JSON object:
//
//	type Script struct{ command string }
//
//	func (s *Script) DecodeString(v string) error {
//		s.command = v
//		return nil
//	}
//
//	type File struct {
//		Scripts jsonflex.Map[Script, *Script] `json:"scripts"`
//	}
//
// ParseFile decodes a whole document with a size guard and file-aware
// syntax errors.
package jsonflex
