// Package hwpx reads HWPX documents, the zip and XML packaging of HWP.
//
// An HWPX package is a zip archive in the OWPML layout: a mimetype entry
// declaring application/hwp+zip, a version.xml manifest, and body sections
// under Contents/section0.xml, Contents/section1.xml, and so on. Unlike
// the binary format there is no fallback ladder here: the XML either
// parses or it does not, so [Extract] is a single deterministic path that
// produces the same result shape the binary extraction strategies produce.
//
// Paragraph text is the concatenation of hp:t runs under each hp:p
// element. Paragraphs inside hp:tbl elements belong to table cells and are
// kept out of the body flow. Elements are matched by the conventional
// prefixes (hp:, hs:) that the stock writers declare.
//
// Document properties are collected from the package manifests
// (Contents/content.hpf, Contents/meta.xml) by local element name, so
// namespace variations across writer versions do not matter.
package hwpx
