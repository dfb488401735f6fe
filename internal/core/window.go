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

// NoWindowEnd is the sentinel EndCol value meaning "render to end of line",
// used when the cluster fits the budget without truncation.
const NoWindowEnd = -1

// ResolveWindow computes a Cluster's [StartCol, EndCol) per C5. lineLen is
// the line's character length; the returned EndCol is NoWindowEnd when no
// right-side windowing is needed.
func ResolveWindow(c *Cluster, wc *WidthCache, lineLen int, cfg Config, lineNoWidth int, marginWidth int) {
	if cfg.LineWidth <= 0 {
		c.StartCol, c.EndCol = 0, NoWindowEnd
		return
	}

	ellipsisWidth := cfg.Glyphs().EllipsisWidth()
	fixed := lineNoWidth + 4 + marginWidth
	limit := cfg.LineWidth - fixed

	arrowCol := c.ArrowLen
	arrowW := wc.At(clampInt(arrowCol, 0, lineLen))
	if arrowCol > lineLen {
		arrowW += arrowCol - lineLen
	}
	edge := arrowW + 1 + c.MaxMsgWidth
	lineW := wc.At(lineLen)

	if edge <= limit && lineW <= limit {
		c.StartCol, c.EndCol = 0, NoWindowEnd
		return
	}

	essential := (arrowW - wc.At(clampInt(c.MinCol, 0, lineLen))) + 1 + c.MaxMsgWidth

	switch {
	case essential+ellipsisWidth >= limit:
		c.StartCol = c.MinCol
		c.EndCol = c.ArrowLen + wc.WidthIndex(1+c.MaxMsgWidth-ellipsisWidth, c.ArrowLen, lineLen)

	case edge <= limit && lineW > limit:
		c.StartCol = 0
		c.EndCol = wc.WidthIndex(limit-arrowW-ellipsisWidth, 0, lineLen)

	default:
		skip := edge - limit + ellipsisWidth
		avail := lineW - edge
		desired := (limit - essential) / 2
		balance := desired
		if desired > avail {
			balance = desired + (desired - avail)
		}
		c.StartCol = wc.WidthIndex(skip+balance, 0, c.MinCol)
		c.EndCol = c.ArrowLen + wc.WidthIndex(1+c.MaxMsgWidth+balance-ellipsisWidth, c.ArrowLen, lineLen)
	}

	if c.StartCol < 0 {
		c.StartCol = 0
	}
	if c.EndCol > lineLen {
		c.EndCol = NoWindowEnd
	}
}
