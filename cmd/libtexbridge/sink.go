package main

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include <stdint.h>
#include "texbridge-interface.h"

static void texbridge_sink_report(texbridge_status_backend *b, uint8_t kind, const char *msg, size_t len) {
	if (b->report != NULL) {
		b->report(b->ctx, kind, msg, len);
	}
}

static void texbridge_sink_dump(texbridge_status_backend *b, const uint8_t *out, size_t len) {
	if (b->dump_error_logs != NULL) {
		b->dump_error_logs(b->ctx, out, len);
	}
}

static void texbridge_sink_destroy(texbridge_status_backend *b) {
	if (b->destroy != NULL) {
		b->destroy(b->ctx);
	}
}
*/
import "C"

import (
	"unsafe"

	"fortio.org/safecast"

	"github.com/wippyai/texbridge/bridge"
	"github.com/wippyai/texbridge/errors"
)

// cSink forwards to a caller-owned texbridge_status_backend.
type cSink struct {
	b *C.texbridge_status_backend
}

var _ bridge.Releaser = (*cSink)(nil)

func newSink(b *C.texbridge_status_backend) *cSink {
	return &cSink{b: b}
}

func (s *cSink) Report(kind bridge.Kind, message string) {
	if !kind.Valid() {
		panic(errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
			Detail("no boundary severity code %d", uint8(kind)).
			Value(kind).
			Build())
	}
	if s.b == nil {
		return
	}
	var p *C.char
	if len(message) > 0 {
		p = (*C.char)(unsafe.Pointer(unsafe.StringData(message)))
	}
	C.texbridge_sink_report(s.b, C.uint8_t(kind), p, cSize(len(message)))
}

func (s *cSink) DumpErrorLogs(output []byte) {
	if s.b == nil {
		return
	}
	var p *C.uint8_t
	if len(output) > 0 {
		p = (*C.uint8_t)(unsafe.Pointer(&output[0]))
	}
	C.texbridge_sink_dump(s.b, p, cSize(len(output)))
}

// Release runs the caller's destroy callback once.
func (s *cSink) Release() {
	if s.b == nil {
		return
	}
	b := s.b
	s.b = nil
	C.texbridge_sink_destroy(b)
}

func cSize(n int) C.size_t {
	u, err := safecast.Conv[uint64](n)
	if err != nil {
		panic(errors.Wrap(errors.PhaseBoundary, errors.KindInvalidInput, err, "length does not fit size_t"))
	}
	return C.size_t(u)
}
