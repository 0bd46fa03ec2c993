package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Entries without a
// slash are dropped; a missing or malformed q defaults to 1, and q is clamped to [0, 1].
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, _ := strings.Cut(part, ";")
		typ, subtype, ok := strings.Cut(strings.ToLower(strings.TrimSpace(mediaType)), "/")
		if !ok {
			continue
		}
		mr := mediaRange{typ: typ, subtype: subtype, q: 1}
		for _, param := range strings.Split(params, ";") {
			key, value, _ := strings.Cut(strings.TrimSpace(param), "=")
			if !strings.EqualFold(key, "q") {
				continue
			}
			if q, err := strconv.ParseFloat(value, 64); err == nil {
				mr.q = min(max(q, 0), 1)
			}
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// prefersCBOR reports whether the client explicitly ranks a CBOR type above every
// explicitly listed JSON type. Wildcards and empty headers resolve to JSON.
func prefersCBOR(accept string) bool {
	var cborQ, jsonQ float64
	for _, mr := range parseAccept(accept) {
		if mr.typ != "application" {
			continue
		}
		switch {
		case mr.subtype == "cbor" || strings.HasSuffix(mr.subtype, "+cbor"):
			cborQ = max(cborQ, mr.q)
		case mr.subtype == "json" || strings.HasSuffix(mr.subtype, "+json"):
			jsonQ = max(jsonQ, mr.q)
		}
	}
	return cborQ > 0 && cborQ > jsonQ
}
