// ABOUTME: Audio output sink package
// ABOUTME: Common interface plus raw-stream and local-speaker backends
// Package output provides audio output sinks for the playback engine.
//
// The engine emits one continuous s16le stream with no framing; a sink is
// only a typed destination for it. Two backends are provided:
//   - Writer: raw samples to any io.Writer (stdout, a pipe, a file)
//   - Oto: a local speaker via the oto library, for monitoring without an
//     external renderer
package output
