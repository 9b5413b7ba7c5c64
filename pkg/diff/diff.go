// Package diff produces line-based unified diffs between two versions of a
// source, as printed by "gosmf fmt --diff".
package diff

import (
	"fmt"
	"strings"
)

// Kind classifies one line of a hunk.
type Kind int

const (
	// Context is a line present in both versions.
	Context Kind = iota

	// Insert is a line only in the new version.
	Insert

	// Delete is a line only in the old version.
	Delete
)

// prefix returns the unified diff marker for k.
func (k Kind) prefix() byte {
	switch k {
	case Insert:
		return '+'
	case Delete:
		return '-'
	default:
		return ' '
	}
}

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Line is one line of a hunk, without its trailing newline.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is the difference between two versions of one file.
type Diff struct {
	Path    string
	Hunks   []Hunk
	Inserts int
	Deletes int
}

// Unified compares before and after line by line and groups the changes into
// hunks with DefaultContext lines of context. It returns nil when the
// versions have the same lines.
func Unified(path, before, after string) *Diff {
	return UnifiedContext(path, before, after, DefaultContext)
}

// UnifiedContext is Unified with an explicit amount of context.
func UnifiedContext(path, before, after string, context int) *Diff {
	ops := compare(splitLines(before), splitLines(after))

	d := &Diff{Path: path}
	for _, o := range ops {
		switch o.kind {
		case Insert:
			d.Inserts++
		case Delete:
			d.Deletes++
		}
	}
	if d.Inserts == 0 && d.Deletes == 0 {
		return nil
	}

	d.Hunks = group(ops, max(context, 0))
	return d
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", d.Path, d.Path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n",
			hunkRange(hunk.OldStart, hunk.OldCount), hunkRange(hunk.NewStart, hunk.NewCount))
		for _, line := range hunk.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// hunkRange formats one side of a hunk header. An empty side names the line
// before the change.
func hunkRange(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprintf("%d", start)
	default:
		return fmt.Sprintf("%d,%d", start, count)
	}
}

// splitLines splits content into lines. A trailing newline does not start
// an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// op is one line of the edit script with its 0-based position in each side.
type op struct {
	kind           Kind
	text           string
	oldIdx, newIdx int
}

// compare builds an edit script from the longest common subsequence of
// the two line lists. Shared prefixes and suffixes skip the table.
func compare(a, b []string) []op {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	ops := make([]op, 0, len(a)+len(b))
	for idx := range prefix {
		ops = append(ops, op{kind: Context, text: a[idx], oldIdx: idx, newIdx: idx})
	}

	midA, midB := a[prefix:len(a)-suffix], b[prefix:len(b)-suffix]

	// lengths[i][j] is the LCS length of midA[i:] and midB[j:].
	lengths := make([][]int, len(midA)+1)
	for idx := range lengths {
		lengths[idx] = make([]int, len(midB)+1)
	}
	for i := len(midA) - 1; i >= 0; i-- {
		for j := len(midB) - 1; j >= 0; j-- {
			if midA[i] == midB[j] {
				lengths[i][j] = lengths[i+1][j+1] + 1
			} else {
				lengths[i][j] = max(lengths[i+1][j], lengths[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(midA) || j < len(midB) {
		switch {
		case i < len(midA) && j < len(midB) && midA[i] == midB[j]:
			ops = append(ops, op{kind: Context, text: midA[i], oldIdx: prefix + i, newIdx: prefix + j})
			i++
			j++
		case j == len(midB) || (i < len(midA) && lengths[i+1][j] >= lengths[i][j+1]):
			ops = append(ops, op{kind: Delete, text: midA[i], oldIdx: prefix + i, newIdx: prefix + j})
			i++
		default:
			ops = append(ops, op{kind: Insert, text: midB[j], oldIdx: prefix + i, newIdx: prefix + j})
			j++
		}
	}

	for idx := range suffix {
		oldIdx := len(a) - suffix + idx
		newIdx := len(b) - suffix + idx
		ops = append(ops, op{kind: Context, text: a[oldIdx], oldIdx: oldIdx, newIdx: newIdx})
	}
	return ops
}

// group splits the edit script into hunks. Changes closer than twice the
// context share a hunk.
func group(ops []op, context int) []Hunk {
	var hunks []Hunk

	for start := 0; start < len(ops); {
		if ops[start].kind == Context {
			start++
			continue
		}

		// Extend end past every change reachable through short context runs.
		end := start
		for end < len(ops) {
			if ops[end].kind != Context {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == Context {
				run++
			}
			if run == len(ops) || run-end > 2*context {
				break
			}
			end = run
		}

		lo := max(start-context, 0)
		hi := min(end+context, len(ops))
		hunks = append(hunks, buildHunk(ops[lo:hi]))
		start = hi
	}
	return hunks
}

func buildHunk(ops []op) Hunk {
	hunk := Hunk{
		OldStart: ops[0].oldIdx + 1,
		NewStart: ops[0].newIdx + 1,
		Lines:    make([]Line, 0, len(ops)),
	}
	for _, o := range ops {
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Insert {
			hunk.OldCount++
		}
		if o.kind != Delete {
			hunk.NewCount++
		}
	}
	return hunk
}
