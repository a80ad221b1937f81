package triagekit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// knownBoxTypes is the allow-list of box type tags the structural walk
// recognizes (the common top-level and movie atoms of ISO-BMFF style
// containers).
var knownBoxTypes = map[string]struct{}{
	"ftyp": {}, "moov": {}, "mdat": {}, "free": {}, "mvhd": {},
	"trak": {}, "mdia": {}, "minf": {}, "stbl": {}, "udta": {},
}

// containerExtensions are the claimed extensions for which the structural
// walk applies. Other files are not box streams and report no issues.
var containerExtensions = map[string]struct{}{
	"mp4": {}, "mov": {}, "mkv": {}, "m4a": {}, "m4v": {}, "3gp": {},
}

// IsContainerExtension reports whether the structural scanner applies to
// the given claimed extension (lower-cased, without the dot).
func IsContainerExtension(ext string) bool {
	_, ok := containerExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// foreignSignatures are embedded-payload markers searched for across the
// whole content, one issue per signature family found.
var foreignSignatures = []struct {
	Issue string
	Magic []byte
}{
	{Issue: "embedded foreign signature: executable header", Magic: []byte("MZ")},
	{Issue: "embedded foreign signature: ZIP archive header", Magic: []byte{'P', 'K', 0x03, 0x04}},
	{Issue: "embedded foreign signature: PDF document header", Magic: []byte("%PDF")},
}

// ScanBoxes validates a box-structured container: a sequence of boxes,
// each a 4-byte big-endian size followed by a 4-byte type tag, the size
// counting its own 8-byte header.
//
// A box whose size cannot encode its own header, or which overruns the
// remaining content, terminates the walk: neither its tag nor any offset
// beyond it can be trusted. Well-formed boxes with unknown tags are
// recorded and skipped.
//
// Independently of the walk, the whole content is searched for embedded
// foreign-format signatures. The search is position-agnostic and may
// false-positive on legitimate multiplexed payloads; that is a documented
// limitation, not a defect.
//
// ScanBoxes never fails: any internal fault degrades into a textual
// issue rather than propagating to the caller.
func ScanBoxes(data []byte) (issues []string) {
	issues = []string{}

	defer func() {
		if r := recover(); r != nil {
			issues = append(issues, fmt.Sprintf("container scan aborted: %v", r))
		}
	}()

	offset := 0
	for offset+8 <= len(data) {
		size := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		tag := data[offset+4 : offset+8]

		if size < 8 || size > len(data)-offset {
			issues = append(issues, fmt.Sprintf("suspicious box size at offset %d", offset))
			break
		}

		if _, ok := knownBoxTypes[string(tag)]; !ok {
			issues = append(issues, fmt.Sprintf("unrecognized box type: %s", printableTag(tag)))
		}

		offset += size
	}

	for _, sig := range foreignSignatures {
		if bytes.Contains(data, sig.Magic) {
			issues = append(issues, sig.Issue)
		}
	}

	return issues
}

// printableTag renders a type tag for an issue message, dropping bytes
// that would corrupt the report text.
func printableTag(tag []byte) string {
	var b strings.Builder
	for _, c := range tag {
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return fmt.Sprintf("%#x", tag)
	}
	return b.String()
}
