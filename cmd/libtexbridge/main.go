// Command libtexbridge is the C shared library exposing texbridge to native callers.
//
// Build it with:
//
//	go build -buildmode=c-shared -o target/cgo/libtexbridge.so ./cmd/libtexbridge
//	go run ./cmd/texbridge header --generated target/cgo/libtexbridge.h
//
// and include target/texbridge.h from C or C++:
//
//	static void report(void *ctx, uint8_t kind, const char *msg, size_t len) {
//	    fprintf(stderr, "%d: %.*s\n", kind, (int)len, msg);
//	}
//
//	texbridge_status_backend *sink = calloc(1, sizeof *sink);
//	sink->ctx = sink;
//	sink->report = report;
//	sink->destroy = free;
//
//	texbridge_bytes pdf = texbridge_run_latex_from_string(src, strlen(src), sink);
//	// sink has been destroyed here
//	fwrite(pdf.data, 1, pdf.length, out);
//	texbridge_bytes_free(pdf);
//
// Setting TEXBRIDGE_LOG to a zap level (debug, info, warn, error) writes the
// library's logs to stderr.
package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/texbridge"
)

func init() {
	level := os.Getenv("TEXBRIDGE_LOG")
	if level == "" {
		return
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return
	}
	texbridge.SetLogger(l.Named("texbridge"))
}

func main() {}
