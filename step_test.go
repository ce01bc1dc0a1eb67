// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock_test

import (
	"bytes"
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/memsock"
)

func TestStepAdvanceEcho(t *testing.T) {
	skipRace(t)
	reg := memsock.NewRegistry()
	ln, err := reg.Bind(21)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	client := memsock.ExprDialBind(reg, 21, func(s *memsock.Socket) kont.Expr[string] {
		return memsock.ExprWriteThen(s, []byte("ping"),
			memsock.ExprReadBind(s, 16, func(p []byte) kont.Expr[string] {
				return memsock.ExprShutdownDone(s, string(p))
			}),
		)
	})
	server := memsock.ExprAcceptBind(ln, func(s *memsock.Socket) kont.Expr[string] {
		return memsock.ExprReadBind(s, 16, func(p []byte) kont.Expr[string] {
			return memsock.ExprWriteThen(s, append([]byte("pong:"), p...),
				memsock.ExprShutdownDone(s, "served"),
			)
		})
	})

	var clientResult kont.Either[error, string]
	done := make(chan struct{})
	go func() {
		clientResult = execExpr(client)
		close(done)
	}()
	serverResult := execExpr(server)
	<-done

	cv, err := mustRight(clientResult)
	if err != nil || cv != "pong:ping" {
		t.Fatalf("client got (%q, %v), want %q", cv, err, "pong:ping")
	}
	sv, err := mustRight(serverResult)
	if err != nil || sv != "served" {
		t.Fatalf("server got (%q, %v), want %q", sv, err, "served")
	}
}

func TestStepInspectOperations(t *testing.T) {
	a, b := memsock.NewPair()

	protocol := memsock.ExprWriteThen(a, []byte("abc"),
		memsock.ExprShutdownDone(a, struct{}{}),
	)

	_, susp := memsock.Step[struct{}](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Write")
	}
	writeOp, ok := susp.Op().(memsock.Write)
	if !ok {
		t.Fatalf("expected Write, got %T", susp.Op())
	}
	if !bytes.Equal(writeOp.Data, []byte("abc")) {
		t.Fatalf("Write data got %q, want %q", writeOp.Data, "abc")
	}

	_, susp, err := memsock.Advance(susp)
	if err != nil {
		t.Fatalf("Advance Write error: %v", err)
	}
	if susp == nil {
		t.Fatal("expected suspension for Shutdown")
	}
	if _, ok = susp.Op().(memsock.Shutdown); !ok {
		t.Fatalf("expected Shutdown, got %T", susp.Op())
	}

	result, susp, err := memsock.Advance(susp)
	if err != nil {
		t.Fatalf("Advance Shutdown error: %v", err)
	}
	if susp != nil {
		t.Fatal("expected nil suspension after Shutdown")
	}
	if !result.IsRight() {
		t.Fatal("expected Right result")
	}

	// The bytes really were transmitted.
	buf := make([]byte, 8)
	n, err := b.Read(buf)
	if err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("peer read got %q, %v", buf[:n], err)
	}
}

func TestAdvanceWouldBlock(t *testing.T) {
	a, b := memsock.NewPair()

	protocol := memsock.ExprReadBind(b, 8, func(p []byte) kont.Expr[string] {
		return kont.ExprReturn(string(p))
	})
	_, susp := memsock.Step[string](protocol)
	if susp == nil {
		t.Fatal("expected suspension for Read")
	}

	// Nothing written yet: the suspension stays unconsumed.
	_, retry, err := memsock.Advance(susp)
	if err != iox.ErrWouldBlock {
		t.Fatalf("Advance got %v, want iox.ErrWouldBlock", err)
	}
	if retry != susp {
		t.Fatal("would-block must leave the suspension unconsumed")
	}

	a.Write([]byte("now"))
	result, next, err := memsock.Advance(retry)
	if err != nil || next != nil {
		t.Fatalf("Advance after write got (%v, %v)", next, err)
	}
	v, err := mustRight(result)
	if err != nil || v != "now" {
		t.Fatalf("read got (%q, %v), want %q", v, err, "now")
	}
}

func TestAdvanceTerminalError(t *testing.T) {
	a, b := memsock.NewPair()
	b.Close()

	protocol := memsock.ExprWriteThen(a, []byte("x"), kont.ExprReturn("unreachable"))
	_, susp := memsock.Step[string](protocol)

	result, next, err := memsock.Advance(susp)
	if err != nil {
		t.Fatalf("Advance got transport error %v, want terminal Left", err)
	}
	if next != nil {
		t.Fatal("terminal failure must discard the suspension")
	}
	left, ok := result.GetLeft()
	if !ok || !errors.Is(left, memsock.ErrBrokenPipe) {
		t.Fatalf("result got %v, want Left(ErrBrokenPipe)", left)
	}
}

func TestAbandonedAcceptLeavesBacklog(t *testing.T) {
	reg := memsock.NewRegistry()
	ln, _ := reg.Bind(22)

	conn, err := reg.Dial(22)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	// Suspend an accept but never advance it: cancellation is as if the
	// call had not been issued, so the pending half stays queued.
	protocol := memsock.ExprAcceptBind(ln, func(s *memsock.Socket) kont.Expr[struct{}] {
		return kont.ExprReturn(struct{}{})
	})
	if _, susp := memsock.Step[struct{}](protocol); susp == nil {
		t.Fatal("expected suspension for Accept")
	}

	peer, err := ln.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if peer.Serial() != conn.Serial() {
		t.Fatalf("accept paired serial %d, want %d", peer.Serial(), conn.Serial())
	}
}

func TestWriteBackpressureWouldBlock(t *testing.T) {
	a, b := memsock.NewPair()

	// Fill the outbound ring without a reader scheduled.
	filled := 0
	for {
		protocol := memsock.ExprWriteThen(a, []byte{byte(filled)}, kont.ExprReturn(struct{}{}))
		_, susp := memsock.Step[struct{}](protocol)
		_, _, err := memsock.Advance(susp)
		if err == iox.ErrWouldBlock {
			break
		}
		if err != nil {
			t.Fatalf("write %d: %v", filled, err)
		}
		filled++
		if filled > 1<<10 {
			t.Fatal("ring never filled")
		}
	}

	// Draining one chunk frees a slot.
	buf := make([]byte, 1)
	if _, err := b.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	protocol := memsock.ExprWriteThen(a, []byte("again"), kont.ExprReturn(struct{}{}))
	_, susp := memsock.Step[struct{}](protocol)
	if _, _, err := memsock.Advance(susp); err != nil {
		t.Fatalf("write after drain: %v", err)
	}
}
