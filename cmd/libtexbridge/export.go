package main

/*
#include <stdlib.h>
#include "texbridge-interface.h"
*/
import "C"

import (
	"unsafe"

	"fortio.org/safecast"

	"github.com/wippyai/texbridge"
	"github.com/wippyai/texbridge/errors"
)

//export texbridge_run_latex_from_string
func texbridge_run_latex_from_string(latex *C.char, length C.size_t, backend *C.texbridge_status_backend) C.texbridge_bytes {
	sink := newSink(backend)

	n, err := safecast.Conv[int](uint64(length))
	if err != nil {
		sink.Release()
		panic(errors.Wrap(errors.PhaseBoundary, errors.KindInvalidInput, err, "markup length does not fit int"))
	}
	var markup string
	if n > 0 {
		markup = string(unsafe.Slice((*byte)(unsafe.Pointer(latex)), n))
	}

	return cBytes(texbridge.RunLatexFromString(markup, sink))
}

//export texbridge_bytes_free
func texbridge_bytes_free(out C.texbridge_bytes) {
	if out.data != nil {
		C.free(unsafe.Pointer(out.data))
	}
}

// cBytes copies data into C memory owned by the caller.
func cBytes(data []byte) C.texbridge_bytes {
	if len(data) == 0 {
		return C.texbridge_bytes{}
	}
	return C.texbridge_bytes{
		data:   (*C.uint8_t)(C.CBytes(data)),
		length: cSize(len(data)),
	}
}
