package review

import "sort"

// Classification is the per-task verdict for a touched file.
type Classification string

const (
	// ClassNew means this task created the file.
	ClassNew Classification = "new"
	// ClassEdited means the file existed before the task, whether it was
	// modified in place or overwritten wholesale.
	ClassEdited Classification = "edited"
)

// FileChangeRecord is the merged net change for one file across a whole task.
// A task can touch the same file many times; the record keeps only the
// content before the first operation and after the last one.
type FileChangeRecord struct {
	FilePath             string         `json:"file_path"`
	Classification       Classification `json:"classification"`
	FirstOriginalContent *string        `json:"first_original_content,omitempty"`
	LastNewContent       *string        `json:"last_new_content,omitempty"`
}

// CanDiff reports whether a before/after comparison can be offered for this
// record. New files have nothing to compare against, and an edited record
// whose events were logged without snapshots degrades to "no diff available"
// instead of failing.
func (r FileChangeRecord) CanDiff() bool {
	return r.Classification == ClassEdited &&
		r.FirstOriginalContent != nil &&
		r.LastNewContent != nil
}

// Aggregate folds an ordered task event log into one record per touched file.
//
// Events are grouped by path and processed in ascending timestamp order
// within each group. A file classifies as new only when its first recorded
// event is a write with empty original content; a first write over non-empty
// content is an overwrite of a pre-existing file and classifies as edited,
// as does a first edit. Later operations never change the verdict.
//
// The function is pure: the same log always produces structurally identical
// output, and an empty log produces an empty list. Output order follows each
// path's first appearance in the raw log.
func Aggregate(events []FileOperationEvent) []FileChangeRecord {
	if len(events) == 0 {
		return []FileChangeRecord{}
	}

	order := make([]string, 0, len(events))
	groups := make(map[string][]FileOperationEvent)
	for _, ev := range events {
		if _, seen := groups[ev.FilePath]; !seen {
			order = append(order, ev.FilePath)
		}
		groups[ev.FilePath] = append(groups[ev.FilePath], ev)
	}

	records := make([]FileChangeRecord, 0, len(order))
	for _, path := range order {
		group := groups[path]
		// Stable sort keeps arrival order as the tie-break for equal timestamps.
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		first := group[0]
		last := group[len(group)-1]

		classification := ClassEdited
		if first.Operation == OpWrite && isEmptyContent(first.OriginalContent) {
			classification = ClassNew
		}

		records = append(records, FileChangeRecord{
			FilePath:             path,
			Classification:       classification,
			FirstOriginalContent: first.OriginalContent,
			LastNewContent:       last.NewContent,
		})
	}

	return records
}

// Buckets splits records into the new and edited lists the review panel
// renders under its "New Files (n)" and "Edited Files (n)" headers.
func Buckets(records []FileChangeRecord) (newFiles, edited []FileChangeRecord) {
	for _, r := range records {
		if r.Classification == ClassNew {
			newFiles = append(newFiles, r)
		} else {
			edited = append(edited, r)
		}
	}
	return newFiles, edited
}

func isEmptyContent(s *string) bool {
	return s == nil || *s == ""
}
