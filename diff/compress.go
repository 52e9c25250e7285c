package diff

// contextRadius is how many unchanged lines are kept on each side of a run of
// changed lines when a diff is compressed for review.
const contextRadius = 3

// Compress reduces a full diff to the parts worth reviewing. Every added or
// removed line is kept; unchanged lines within contextRadius of a change are
// kept and re-tagged as context; each remaining stretch of unchanged lines is
// elided. An elided stretch followed by further diff content collapses into a
// single ellipsis marker, so two markers never sit next to each other. A diff
// with no changes at all becomes a single no-changes marker.
func Compress(full []Line) []Line {
	keep := make([]bool, len(full))
	hasChanges := false
	for i, line := range full {
		if line.Type != LineAdded && line.Type != LineRemoved {
			continue
		}
		hasChanges = true
		lo := i - contextRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + contextRadius
		if hi > len(full)-1 {
			hi = len(full) - 1
		}
		for k := lo; k <= hi; k++ {
			keep[k] = true
		}
	}

	if !hasChanges {
		return []Line{{Type: LineContext, Content: NoChanges}}
	}

	compressed := make([]Line, 0, len(full))
	elided := false
	for i, line := range full {
		if !keep[i] {
			elided = true
			continue
		}
		if elided {
			compressed = append(compressed, Line{Type: LineContext, Content: Ellipsis})
			elided = false
		}
		if line.Type == LineUnchanged {
			line.Type = LineContext
		}
		compressed = append(compressed, line)
	}

	// A trailing elided stretch gets no marker: nothing resumes after it.
	return compressed
}
