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

package diag

import "github.com/sourcelens/diag/internal/core"

// ErrorCode is one of §6's error codes.
type ErrorCode = core.Code

const (
	CodeOK               = core.ErrOK
	CodeInvalidParameter = core.ErrInvalidParameter
	CodeInvalidSource    = core.ErrInvalidSource
	CodeLineLookupFailed = core.ErrLineLookupFailed
	CodeIO               = core.ErrIO
)

// AsError wraps a [Report] so it satisfies [error]; its Error method renders
// the report with the report's own Config into a single string.
type AsError struct {
	Report *Report
}

// Error implements [error].
func (e *AsError) Error() string {
	text, err := e.Report.RenderString()
	if err != nil {
		return err.Error()
	}
	return text
}
