// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing connection identifier.
// Both sockets of a pair share one serial; no two pairs share one.
type Serial = uint32

// counter is the global monotonic counter for connection serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
