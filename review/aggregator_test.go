package review

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string {
	return &s
}

// event builds a test event with a timestamp offset in seconds.
func event(path string, op Operation, original, new *string, offset int) FileOperationEvent {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return FileOperationEvent{
		ToolID:          fmt.Sprintf("tool-%s-%d", path, offset),
		FilePath:        path,
		Operation:       op,
		Timestamp:       base.Add(time.Duration(offset) * time.Second),
		OriginalContent: original,
		NewContent:      new,
	}
}

func TestClassificationNewFile(t *testing.T) {
	// A write with empty original content means this task created the file
	events := []FileOperationEvent{
		event("module.a", OpWrite, strPtr(""), strPtr("hello"), 0),
	}

	records := Aggregate(events)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.FilePath != "module.a" {
		t.Errorf("Expected path module.a, got %s", rec.FilePath)
	}
	if rec.Classification != ClassNew {
		t.Errorf("Expected classification new, got %s", rec.Classification)
	}
	if rec.CanDiff() {
		t.Errorf("New files should not offer a diff")
	}
}

func TestClassificationAbsentOriginalIsNew(t *testing.T) {
	// Some tools log a creation without any original snapshot at all
	events := []FileOperationEvent{
		event("fresh.go", OpWrite, nil, strPtr("package fresh"), 0),
	}

	records := Aggregate(events)

	if records[0].Classification != ClassNew {
		t.Errorf("Expected classification new, got %s", records[0].Classification)
	}
}

func TestClassificationOverwriteIsEdited(t *testing.T) {
	// A write over non-empty prior content is an overwrite, not a creation
	events := []FileOperationEvent{
		event("existing.go", OpWrite, strPtr("old"), strPtr("v1"), 0),
	}

	records := Aggregate(events)

	rec := records[0]
	if rec.Classification != ClassEdited {
		t.Errorf("Expected classification edited, got %s", rec.Classification)
	}
	if rec.FirstOriginalContent == nil || *rec.FirstOriginalContent != "old" {
		t.Errorf("Expected first original content %q, got %v", "old", rec.FirstOriginalContent)
	}
	if !rec.CanDiff() {
		t.Errorf("Overwritten file with both snapshots should offer a diff")
	}
}

func TestClassificationEditFirstIsEdited(t *testing.T) {
	events := []FileOperationEvent{
		event("a.go", OpEdit, strPtr("before"), strPtr("after"), 0),
	}

	records := Aggregate(events)

	if records[0].Classification != ClassEdited {
		t.Errorf("Expected classification edited, got %s", records[0].Classification)
	}
}

func TestWriteThenEditStaysNew(t *testing.T) {
	// Once a file classifies as new, later operations never change the verdict
	events := []FileOperationEvent{
		event("a.go", OpWrite, strPtr(""), strPtr("v1"), 0),
		event("a.go", OpEdit, strPtr("v1"), strPtr("v2"), 1),
		event("a.go", OpWrite, strPtr("v2"), strPtr("v3"), 2),
	}

	records := Aggregate(events)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Classification != ClassNew {
		t.Errorf("Expected classification new, got %s", rec.Classification)
	}
	if rec.LastNewContent == nil || *rec.LastNewContent != "v3" {
		t.Errorf("Expected last new content v3, got %v", rec.LastNewContent)
	}
}

func TestMergeSequentialEdits(t *testing.T) {
	events := []FileOperationEvent{
		event("p.go", OpEdit, strPtr("v0"), strPtr("v1"), 0),
		event("p.go", OpEdit, strPtr("v1"), strPtr("v2"), 1),
		event("p.go", OpEdit, strPtr("v2"), strPtr("v3"), 2),
	}

	records := Aggregate(events)

	if len(records) != 1 {
		t.Fatalf("Expected exactly one merged record, got %d", len(records))
	}
	rec := records[0]
	if rec.FirstOriginalContent == nil || *rec.FirstOriginalContent != "v0" {
		t.Errorf("Expected first original v0, got %v", rec.FirstOriginalContent)
	}
	if rec.LastNewContent == nil || *rec.LastNewContent != "v3" {
		t.Errorf("Expected last new v3, got %v", rec.LastNewContent)
	}
}

func TestEventsSortedByTimestampWithinPath(t *testing.T) {
	// The log arrives out of order; first/last must follow timestamps
	events := []FileOperationEvent{
		event("x.go", OpEdit, strPtr("v1"), strPtr("v2"), 5),
		event("x.go", OpEdit, strPtr("v0"), strPtr("v1"), 0),
	}

	records := Aggregate(events)

	rec := records[0]
	if rec.FirstOriginalContent == nil || *rec.FirstOriginalContent != "v0" {
		t.Errorf("Expected first original v0, got %v", rec.FirstOriginalContent)
	}
	if rec.LastNewContent == nil || *rec.LastNewContent != "v2" {
		t.Errorf("Expected last new v2, got %v", rec.LastNewContent)
	}
}

func TestOutputOrderFollowsFirstAppearance(t *testing.T) {
	events := []FileOperationEvent{
		event("b.go", OpEdit, strPtr("b0"), strPtr("b1"), 0),
		event("a.go", OpWrite, strPtr(""), strPtr("a1"), 1),
		event("b.go", OpEdit, strPtr("b1"), strPtr("b2"), 2),
	}

	records := Aggregate(events)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].FilePath != "b.go" || records[1].FilePath != "a.go" {
		t.Errorf("Expected order [b.go a.go], got [%s %s]", records[0].FilePath, records[1].FilePath)
	}
}

func TestEmptyLogYieldsEmptyList(t *testing.T) {
	records := Aggregate(nil)

	if records == nil {
		t.Fatalf("Expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestMissingSnapshotsDegradeToNoDiff(t *testing.T) {
	// Events logged without snapshots still appear in the edited list, but
	// the diff affordance is suppressed
	events := []FileOperationEvent{
		event("broken.go", OpEdit, nil, nil, 0),
	}

	records := Aggregate(events)

	rec := records[0]
	if rec.Classification != ClassEdited {
		t.Errorf("Expected classification edited, got %s", rec.Classification)
	}
	if rec.CanDiff() {
		t.Errorf("Record without snapshots should not offer a diff")
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	events := []FileOperationEvent{
		event("a.go", OpWrite, strPtr(""), strPtr("v1"), 0),
		event("b.go", OpEdit, strPtr("x"), strPtr("y"), 1),
		event("a.go", OpEdit, strPtr("v1"), strPtr("v2"), 2),
	}

	first := Aggregate(events)
	second := Aggregate(events)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregating the same log twice produced different output:\n%v\n%v", first, second)
	}
}

func TestBuckets(t *testing.T) {
	events := []FileOperationEvent{
		event("new1.go", OpWrite, strPtr(""), strPtr("a"), 0),
		event("edit1.go", OpEdit, strPtr("x"), strPtr("y"), 1),
		event("new2.go", OpWrite, nil, strPtr("b"), 2),
	}

	newFiles, edited := Buckets(Aggregate(events))

	if len(newFiles) != 2 {
		t.Errorf("Expected 2 new files, got %d", len(newFiles))
	}
	if len(edited) != 1 {
		t.Errorf("Expected 1 edited file, got %d", len(edited))
	}
}
