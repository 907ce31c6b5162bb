// Package logtail reads the tail of the Vitrine activity log for display
// in the TUI.
//
// # Overview
//
// Vitrine logs every action outcome as one zerolog JSON line in a file
// under the data directory. This package extracts the last N lines from
// that file without loading it fully into memory and renders each JSON
// line as a readable "time LEVEL message k=v" string.
//
// # Reading Log Files
//
// The Read function uses a ring buffer of size maxLines: the file is
// scanned once, each line overwrites the oldest slot, and the buffer is
// unrolled into chronological order at the end. Memory use is bounded by
// maxLines regardless of file size. A missing log file is not an error;
// it simply yields no lines.
//
// # Formatting
//
// FormatLine parses a JSON object line and prints the time, level and
// message first, followed by the remaining fields in sorted key=value
// form. Anything that is not a JSON object passes through unchanged, so
// mixed or corrupt log files still render.
package logtail
