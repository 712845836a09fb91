// Package textview implements text layout and highlight compositing for
// editable text widgets.
//
// # Overview
//
// textview maps a document's character and element model onto pixel
// geometry: it performs line breaking and tab expansion, tracks incremental
// layout invalidation as the document mutates, and composites selection and
// highlight overlays beneath glyph rendering.
//
// The layout tree is built from independent view types that all implement
// the View interface:
//
//   - GlyphView: an atomic styled run of text over one leaf element
//   - ParagraphView / Row: variable-height flowed paragraph layout with
//     justification, tab stops and first-line indent
//   - PlainView: fixed-height single-font lines with a longest-line cache
//   - WrappedView: fixed-font lines wrapped at word or character boundaries
//
// The document model, attribute sets and font measurement are supplied by
// the caller through the Document, Element, Style and Face interfaces;
// drawing goes through the Surface interface. A Context carrying the
// document, host and view factory is threaded explicitly through every
// layout and paint call — the engine keeps no global state.
//
// Highlight compositing lives in the highlight subpackage. Font loading
// and measurement backends live in the fontface subpackage. Test doubles
// for the host-side interfaces live in the textviewtest subpackage.
//
// # Concurrency
//
// The engine is single-threaded by precondition: document mutation and
// painting must not interleave concurrently. Mutation handlers update
// cached layout state synchronously and request repaints through the host
// rather than painting directly.
package textview
