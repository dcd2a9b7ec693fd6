// Package pipeline implements the record-to-page stages of a build.
//
// This package handles rendering and HTML injection:
//   - Article and tour date fragment rendering (plain text or Markdown bodies)
//   - Tour date classification (cancelled, past, confirmed, pending)
//   - Content splicing into a document via markers, placeholder, or container id
//   - Last-updated timestamp stamping
//
// File access is left to the root htmlsplice package. Everything here works
// on strings, so each stage can be tested without touching the disk.
package pipeline
