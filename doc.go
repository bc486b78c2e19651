// Package capwire is a hardened decoder for the Cap'n Proto wire encoding.
//
// The library reads segmented, pointer-based binary messages from untrusted
// buffers without transcoding: struct and scalar fields are read in place,
// and only primitive scalar lists are materialized.
//
// # Architecture Overview
//
// The repository is organized into packages with distinct responsibilities:
//
//	capwire/        Root package documentation
//	├── wire/       Segment framing, pointer resolution, struct/list layout,
//	│               scalar defaults, text post-processing
//	├── errors/     Structured format-error type (phase + kind)
//	└── cmd/
//	    └── capnview/  Message inspector CLI with an interactive TUI
//
// # Quick Start
//
//	r, err := wire.NewReader(buf) // or wire.NewFlatReader for unframed input
//	if err != nil {
//	    log.Fatal(err)
//	}
//	value, err := wire.ReadRoot(r, decodeMyType)
//
// # Thread Safety
//
// A Reader is NOT safe for concurrent use: traversal mutates the current
// segment and the read/depth budgets. Readers over independent messages are
// fully isolated and may run in parallel.
package capwire
