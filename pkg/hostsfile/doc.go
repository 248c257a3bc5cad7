// Package hostsfile parses and renders hosts-style files without losing formatting.
//
// A file is read into a [Document]: one [Line] per physical line, in source order.
// Lines that look like `<address> <hostnames>` become entries; comments, blank lines
// and anything else become passthrough lines that are written back verbatim.
//
// # Usage
//
//	doc := hostsfile.ParseDocument(data)
//	doc.Upsert("127.0.0.1", "example.com")
//	doc.Delete("10.0.0.1", "old.example.com")
//	err := os.WriteFile(path, []byte(doc.Render()), 0o644)
//
// Parsing never fails. A document that is parsed and rendered again without being
// mutated yields the original bytes, except that line terminators are normalized to
// the document's EOL sequence.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package hostsfile
