// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// Code is one of the §6 error codes.
type Code int

const (
	ErrOK               Code = 0
	ErrInvalidParameter Code = -1
	ErrInvalidSource    Code = -2
	ErrLineLookupFailed Code = -3
	ErrIO               Code = -4
)

// RenderError is a configuration-time error (§7: "reported before any
// output is emitted; no partial render").
type RenderError struct {
	Code    Code
	Message string
}

func (e *RenderError) Error() string { return e.Message }
