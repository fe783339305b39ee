// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmgisa

// Export is a request to surface a label's resolved address for
// downstream (out-of-scope) linking, recorded by the EXPORT/GLOBAL
// directives.
type Export struct {
	Name    string
	Address Address
}
