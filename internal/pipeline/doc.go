// Package pipeline implements the markdown-to-page stages: source
// normalization, goldmark conversion with fence routing, sanitization,
// feature detection, snippet extraction, path rewriting, and page assembly.
//
// Stages are small types behind narrow interfaces so the renderer can
// compose them and tests can exercise them in isolation. Every stage that
// can block takes a context.Context.
package pipeline
