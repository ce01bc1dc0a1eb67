// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/memsock"
)

// BenchmarkWriteRead measures a single chunk round-trip on one pair.
func BenchmarkWriteRead(b *testing.B) {
	skipRace(b)
	b.ReportAllocs()
	x, y := memsock.NewPair()
	payload := []byte("0123456789abcdef")
	buf := make([]byte, len(payload))
	for b.Loop() {
		if _, err := x.Write(payload); err != nil {
			b.Fatal(err)
		}
		if _, err := y.Read(buf); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDialAccept measures pairing a dial with a pending accept.
func BenchmarkDialAccept(b *testing.B) {
	b.ReportAllocs()
	reg := memsock.NewRegistry()
	ln, err := reg.Bind(1)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		if _, err := reg.Dial(1); err != nil {
			b.Fatal(err)
		}
		if _, err := ln.Accept(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkExprEcho measures a cooperative write/read/shutdown exchange
// interleaved on the calling goroutine.
func BenchmarkExprEcho(b *testing.B) {
	skipRace(b)
	b.ReportAllocs()
	for b.Loop() {
		x, y := memsock.NewPair()
		client := memsock.ExprWriteThen(x, []byte("ping"),
			memsock.ExprShutdownDone(x, struct{}{}),
		)
		server := memsock.ExprReadBind(y, 16, func(p []byte) kont.Expr[int] {
			return kont.ExprReturn(len(p))
		})
		memsock.RunExpr[struct{}, int](client, server)
	}
}
