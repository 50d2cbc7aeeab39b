// Package texbridge exposes a TeX engine to callers on the other side of the C
// ABI, and to Go programs.
//
// A caller hands over markup and a diagnostic sink and gets back the rendered
// PDF. While the engine runs, the sink receives severity-tagged messages and,
// after a failure, the engine log.
//
// # Architecture Overview
//
//	texbridge/           Render and RunLatexFromString
//	├── bridge/          Diagnostic Bridge: engine status → foreign sink
//	├── status/          The engine-side status capability
//	├── driver/          Processing sessions and the engine process
//	├── config/          Persistent TOML configuration
//	├── bundle/          Support bundle resolution and its cache
//	├── header/          Deployment header transform (build time)
//	├── errors/          Structured error types
//	└── cmd/
//	    ├── libtexbridge/  C shared library exporting the entry point
//	    └── texbridge/     Command line front end
//
// # Quick Start
//
//	r := texbridge.New()
//	rec := &bridge.Recorder{}
//
//	art, err := r.Render(`\documentclass{article}\begin{document}Hello\end{document}`, rec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if art.Found {
//	    os.WriteFile("hello.pdf", art.Data, 0o644)
//	}
//
// Render requires an existing configuration file; it never creates one. Use
// `texbridge config init` or config.Open(true) to provision it.
//
// # Failure Model
//
// Render returns a categorized *errors.Error. RunLatexFromString keeps the
// contract of the C entry point: setup and engine failures panic, which aborts
// the process at the C boundary, and a run that produced no PDF returns an
// empty slice.
//
// # Building the C library
//
//	go build -buildmode=c-shared -o target/cgo/libtexbridge.so ./cmd/libtexbridge
//	go run ./cmd/texbridge header --generated target/cgo/libtexbridge.h
//
// The second step writes target/texbridge.h, the single header native code
// includes. See package header.
//
// # Thread Safety
//
// Renderer is safe for concurrent use; each Render call owns its sink and
// session. Concurrent renders share the on-disk caches.
package texbridge
