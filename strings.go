package triagekit

// ExtractStrings scans data for maximal runs of printable ASCII bytes
// (0x20-0x7E) of at least minLength bytes. Results are deduplicated,
// capped at limit entries, and returned in first-seen order so identical
// input always yields an identical list.
func ExtractStrings(data []byte, minLength, limit int) []string {
	if minLength < 1 {
		minLength = 1
	}

	out := []string{}
	seen := make(map[string]struct{})
	runStart := -1

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		if end-runStart >= minLength {
			s := string(data[runStart:end])
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
		runStart = -1
	}

	for i, b := range data {
		if b >= 0x20 && b <= 0x7E {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
		if limit >= 0 && len(out) >= limit {
			return out[:limit]
		}
	}
	flush(len(data))

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
