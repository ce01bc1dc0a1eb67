// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memsock

import (
	"code.hybscloud.com/kont"
)

// readAllChunk is the per-operation read size used by ReadAll.
const readAllChunk = 1024

// AcceptBind accepts a pending connection and passes it to f.
// Fuses Perform(Accept{...}) + Bind.
func AcceptBind[B any](l *Listener, f func(*Socket) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Accept{Listener: l}), f)
}

// DialBind connects to addr and passes the connected socket to f.
// Fuses Perform(Dial{...}) + Bind.
func DialBind[B any](r *Registry, addr Addr, f func(*Socket) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Dial{Registry: r, Addr: addr}), f)
}

// ReadBind reads up to maxLen bytes and passes them to f; a zero-length
// slice signals end of stream. Fuses Perform(Read{...}) + Bind.
func ReadBind[B any](s *Socket, maxLen int, f func([]byte) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Read{Socket: s, MaxLen: maxLen}), f)
}

// WriteThen writes p whole and then continues with next.
// Fuses Perform(Write{...}) + Then.
func WriteThen[B any](s *Socket, p []byte, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Write{Socket: s, Data: p}), next)
}

// ShutdownThen half-closes the outbound direction and then continues
// with next. Fuses Perform(Shutdown{...}) + Then.
func ShutdownThen[B any](s *Socket, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Shutdown{Socket: s}), next)
}

// ShutdownDone half-closes the outbound direction and returns a.
// Fuses Perform(Shutdown{...}) + Then + Pure.
func ShutdownDone[A any](s *Socket, a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Shutdown{Socket: s}), kont.Pure(a))
}

// ReadAll reads until end of stream and returns everything received,
// in order. The peer signals the end with Shutdown or Close.
func ReadAll(s *Socket) kont.Eff[[]byte] {
	return readAllAcc(s, nil)
}

func readAllAcc(s *Socket, acc []byte) kont.Eff[[]byte] {
	return ReadBind(s, readAllChunk, func(p []byte) kont.Eff[[]byte] {
		if len(p) == 0 {
			return kont.Pure(acc)
		}
		return readAllAcc(s, append(acc, p...))
	})
}
