package diff

import "strings"

// LineType classifies a single line of a computed diff.
type LineType string

const (
	LineAdded     LineType = "added"
	LineRemoved   LineType = "removed"
	LineUnchanged LineType = "unchanged"
	LineContext   LineType = "context"
)

// Ellipsis is the content of a marker line standing in for an elided stretch
// of unchanged lines.
const Ellipsis = "..."

// NoChanges is the content of the single marker line emitted when the two
// inputs are identical.
const NoChanges = "No changes detected"

// Line is one row of a diff. OldLine and NewLine are 1-based; zero means the
// number does not apply (added lines carry no old number, marker lines carry
// neither).
type Line struct {
	Type    LineType `json:"type"`
	Content string   `json:"content"`
	OldLine int      `json:"old_line,omitempty"`
	NewLine int      `json:"new_line,omitempty"`
}

// IsMarker reports whether the line is a synthetic marker (ellipsis or
// no-changes notice) rather than file content.
func (l Line) IsMarker() bool {
	return l.Type == LineContext && l.OldLine == 0 && l.NewLine == 0
}

// Render produces the reviewable diff between two whole-file contents: the
// full line diff compressed down to context windows around each change. This
// is the operation the review panel calls when a diff view is opened.
func Render(original, modified string) []Line {
	return Compress(Compute(original, modified))
}

// Compute builds the full line-by-line diff between two whole-file contents.
// Lines of the longest common subsequence are emitted as unchanged with both
// line numbers; everything between consecutive matches comes out as removed
// (original-only) lines followed by added (modified-only) lines.
//
// A wholly empty side is a pure addition or pure deletion: the phantom empty
// line an empty string would otherwise split into must not show up as a
// removed or added line.
func Compute(original, modified string) []Line {
	if original == "" && modified != "" {
		newLines := strings.Split(modified, "\n")
		result := make([]Line, 0, len(newLines))
		for i, content := range newLines {
			result = append(result, Line{Type: LineAdded, Content: content, NewLine: i + 1})
		}
		return result
	}
	if modified == "" && original != "" {
		oldLines := strings.Split(original, "\n")
		result := make([]Line, 0, len(oldLines))
		for i, content := range oldLines {
			result = append(result, Line{Type: LineRemoved, Content: content, OldLine: i + 1})
		}
		return result
	}

	oldLines := strings.Split(original, "\n")
	newLines := strings.Split(modified, "\n")

	pairs := matchLines(oldLines, newLines)

	result := make([]Line, 0, len(oldLines)+len(newLines))
	oi, nj := 0, 0
	for _, p := range pairs {
		for ; oi < p.old; oi++ {
			result = append(result, Line{Type: LineRemoved, Content: oldLines[oi], OldLine: oi + 1})
		}
		for ; nj < p.new; nj++ {
			result = append(result, Line{Type: LineAdded, Content: newLines[nj], NewLine: nj + 1})
		}
		result = append(result, Line{Type: LineUnchanged, Content: oldLines[p.old], OldLine: p.old + 1, NewLine: p.new + 1})
		oi, nj = p.old+1, p.new+1
	}
	for ; oi < len(oldLines); oi++ {
		result = append(result, Line{Type: LineRemoved, Content: oldLines[oi], OldLine: oi + 1})
	}
	for ; nj < len(newLines); nj++ {
		result = append(result, Line{Type: LineAdded, Content: newLines[nj], NewLine: nj + 1})
	}

	return result
}

// matchPair links a line index in the original text to its match in the
// modified text. Both indices are 0-based.
type matchPair struct {
	old int
	new int
}

// matchLines computes the longest common subsequence of the two line slices
// using the classic O(m*n) dynamic-programming table, then reconstructs the
// matched index pairs by backtracking through it.
func matchLines(oldLines, newLines []string) []matchPair {
	m, n := len(oldLines), len(newLines)

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldLines[i-1] == newLines[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	pairs := make([]matchPair, 0, table[m][n])
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case oldLines[i-1] == newLines[j-1]:
			pairs = append(pairs, matchPair{old: i - 1, new: j - 1})
			i--
			j--
		case table[i-1][j] > table[i][j-1]:
			i--
		default:
			// On a tie the modified-side cursor moves, so ambiguous regions
			// report removals before additions.
			j--
		}
	}

	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}
