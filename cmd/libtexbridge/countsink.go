package main

/*
#include <stdlib.h>
#include <string.h>
#include "texbridge-interface.h"

typedef struct texbridge_counting_sink {
	texbridge_status_backend backend;
	int reports;
	int dumps;
	int destroys;
	uint8_t last_kind;
	int last_null;
	size_t last_length;
	char last_message[256];
} texbridge_counting_sink;

static void texbridge_counting_report(void *ctx, uint8_t kind, const char *message, size_t length) {
	texbridge_counting_sink *s = ctx;
	size_t n = length < sizeof s->last_message ? length : sizeof s->last_message;
	s->reports++;
	s->last_kind = kind;
	s->last_null = message == NULL;
	s->last_length = length;
	if (message != NULL) {
		memcpy(s->last_message, message, n);
	}
}

static void texbridge_counting_dump(void *ctx, const uint8_t *output, size_t length) {
	texbridge_counting_sink *s = ctx;
	s->dumps++;
	s->last_null = output == NULL;
	s->last_length = length;
}

static void texbridge_counting_destroy(void *ctx) {
	((texbridge_counting_sink *)ctx)->destroys++;
}

static texbridge_counting_sink *texbridge_counting_sink_new(int with_report, int with_dump) {
	texbridge_counting_sink *s = calloc(1, sizeof *s);
	s->backend.ctx = s;
	if (with_report) {
		s->backend.report = texbridge_counting_report;
	}
	if (with_dump) {
		s->backend.dump_error_logs = texbridge_counting_dump;
	}
	s->backend.destroy = texbridge_counting_destroy;
	return s;
}
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/texbridge/bridge"
)

// countingSink is a texbridge_status_backend implemented in C that counts its
// callbacks. It lets Go code drive the exported entry points the way a native
// caller does. destroy only counts; free releases the memory.
type countingSink struct {
	c *C.texbridge_counting_sink
}

func newCountingSink(withReport, withDump bool) *countingSink {
	return &countingSink{c: C.texbridge_counting_sink_new(cBool(withReport), cBool(withDump))}
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

func (s *countingSink) backend() *C.texbridge_status_backend { return &s.c.backend }

func (s *countingSink) reports() int  { return int(s.c.reports) }
func (s *countingSink) dumps() int    { return int(s.c.dumps) }
func (s *countingSink) destroys() int { return int(s.c.destroys) }

func (s *countingSink) lastKind() bridge.Kind { return bridge.Kind(s.c.last_kind) }
func (s *countingSink) lastWasNull() bool     { return s.c.last_null != 0 }
func (s *countingSink) lastLength() int       { return int(s.c.last_length) }

func (s *countingSink) lastMessage() string {
	n := min(int(s.c.last_length), len(s.c.last_message))
	return C.GoStringN(&s.c.last_message[0], C.int(n))
}

func (s *countingSink) free() {
	C.free(unsafe.Pointer(s.c))
}

// cMarkup copies markup into C memory; release it with freeMarkup.
func cMarkup(markup string) (*C.char, C.size_t) {
	return C.CString(markup), cSize(len(markup))
}

func freeMarkup(p *C.char) {
	C.free(unsafe.Pointer(p))
}

// goBytes copies rendered output back into Go memory.
func goBytes(out C.texbridge_bytes) []byte {
	if out.data == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(out.data), C.int(out.length))
}
