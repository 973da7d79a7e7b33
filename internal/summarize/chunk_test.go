package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSummarizeChunkRetriesTransientError(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("temporary upstream hiccup")},
		fakeResponse{content: `{"idea":"from chunk"}`, usage: usageOf(10, 2)},
	)
	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }

	got, usage, err := e.summarizeChunk(context.Background(), "chunk text", "", testConfig())
	if err != nil {
		t.Fatalf("summarizeChunk returned error: %v", err)
	}
	if got["idea"] != "from chunk" {
		t.Errorf("idea = %q, want %q", got["idea"], "from chunk")
	}
	if usage != usageOf(10, 2) {
		t.Errorf("usage = %+v, want %+v", usage, usageOf(10, 2))
	}
	if len(client.reqs) != 2 {
		t.Errorf("got %d calls, want 2", len(client.reqs))
	}
	if len(slept) != 1 || slept[0] != chunkRetryDelay {
		t.Errorf("slept %v, want one pause of %v", slept, chunkRetryDelay)
	}
}

func TestSummarizeChunkSizeErrorFailsFast(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("the input is too long for this model")},
	)

	_, _, err := e.summarizeChunk(context.Background(), "chunk", "", testConfig())
	if err == nil {
		t.Fatal("want error for an oversized chunk")
	}
	if len(client.reqs) != 1 {
		t.Errorf("got %d calls, want 1 (size errors are not retried)", len(client.reqs))
	}
}

func TestSummarizeChunkGivesUpAfterMaxAttempts(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("boom")},
		fakeResponse{err: errors.New("boom again")},
	)

	_, _, err := e.summarizeChunk(context.Background(), "chunk", "", testConfig())
	if err == nil {
		t.Fatal("want error after retries are exhausted")
	}
	if len(client.reqs) != chunkAttempts {
		t.Errorf("got %d calls, want %d", len(client.reqs), chunkAttempts)
	}
}

func TestRecursiveBinaryMapSplitsAndMerges(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("too many tokens requested")},
		fakeResponse{content: `{"idea":"left half"}`, usage: usageOf(10, 1)},
		fakeResponse{content: `{"idea":"right half"}`, usage: usageOf(12, 2)},
		fakeResponse{content: `{"idea":"merged"}`, usage: usageOf(4, 1)},
	)

	got, usage, err := e.recursiveBinaryMap(context.Background(), "abcdefghij klmnopqrst", "", testConfig())
	if err != nil {
		t.Fatalf("recursiveBinaryMap returned error: %v", err)
	}
	if got["idea"] != "merged" {
		t.Errorf("idea = %q, want %q", got["idea"], "merged")
	}

	want := usageOf(10, 1).Add(usageOf(12, 2)).Add(usageOf(4, 1))
	if usage != want {
		t.Errorf("usage = %+v, want exactly left+right+merge = %+v", usage, want)
	}

	if len(client.reqs) != 4 {
		t.Fatalf("got %d calls, want 4", len(client.reqs))
	}
	if got, want := client.reqs[1].User, "map abcdefghij k"; got != want {
		t.Errorf("left chunk prompt = %q, want %q", got, want)
	}
	if got, want := client.reqs[2].User, "map ij klmnopqrst"; got != want {
		t.Errorf("right chunk prompt = %q, want %q", got, want)
	}
	if !strings.Contains(client.reqs[3].User, `"left half"`) || !strings.Contains(client.reqs[3].User, `"right half"`) {
		t.Errorf("merge prompt %q does not carry both partials", client.reqs[3].User)
	}
}

func TestRecursiveBinaryMapPropagatesOtherErrors(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("boom")},
		fakeResponse{err: errors.New("boom")},
	)

	_, _, err := e.recursiveBinaryMap(context.Background(), "some text", "", testConfig())
	if err == nil {
		t.Fatal("want non-size error to surface")
	}
	if len(client.reqs) != 2 {
		t.Errorf("got %d calls, want 2 (no split on non-size errors)", len(client.reqs))
	}
}

func TestChunkedMapReduceLeafSuccess(t *testing.T) {
	e, client := newTestEngine(t,
		fakeResponse{content: `{"idea":"whole span"}`, usage: usageOf(30, 5)},
	)

	got, usage, err := e.ChunkedMapReduce(context.Background(), "fits in one call", "", testConfig())
	if err != nil {
		t.Fatalf("ChunkedMapReduce returned error: %v", err)
	}
	if got["idea"] != "whole span" {
		t.Errorf("idea = %q, want %q", got["idea"], "whole span")
	}
	if usage != usageOf(30, 5) {
		t.Errorf("usage = %+v, want %+v", usage, usageOf(30, 5))
	}
	if len(client.reqs) != 1 {
		t.Errorf("got %d calls, want 1 (no merge for a single leaf)", len(client.reqs))
	}
}

func TestRecursiveBinaryMapDepthTwo(t *testing.T) {
	// The left half is itself too large once, forcing a second level of
	// recursion on that side only.
	e, client := newTestEngine(t,
		fakeResponse{err: errors.New("maximum context exceeded")}, // whole text
		fakeResponse{err: errors.New("maximum context exceeded")}, // left half
		fakeResponse{content: `{"idea":"ll"}`, usage: usageOf(1, 1)},  // left-left
		fakeResponse{content: `{"idea":"lr"}`, usage: usageOf(2, 1)},  // left-right
		fakeResponse{content: `{"idea":"lm"}`, usage: usageOf(3, 1)},  // merge left
		fakeResponse{content: `{"idea":"r"}`, usage: usageOf(4, 1)},   // right half
		fakeResponse{content: `{"idea":"top"}`, usage: usageOf(5, 1)}, // merge top
	)

	got, usage, err := e.recursiveBinaryMap(context.Background(),
		"The first long sentence of the document. The second long sentence of the document.",
		"", testConfig())
	if err != nil {
		t.Fatalf("recursiveBinaryMap returned error: %v", err)
	}
	if got["idea"] != "top" {
		t.Errorf("idea = %q, want %q", got["idea"], "top")
	}

	wantLeft := usageOf(1, 1).Add(usageOf(2, 1)).Add(usageOf(3, 1))
	want := wantLeft.Add(usageOf(4, 1)).Add(usageOf(5, 1))
	if usage != want {
		t.Errorf("usage = %+v, want %+v (sums hold at every level)", usage, want)
	}
	if len(client.reqs) != 7 {
		t.Errorf("got %d calls, want 7", len(client.reqs))
	}
}
