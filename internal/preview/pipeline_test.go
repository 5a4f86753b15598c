package preview_test

import (
	"testing"
	"time"

	"github.com/svglens/svglens/internal/preview"
)

func TestPipelineGenerations(t *testing.T) {
	pipe := preview.NewPipeline(&stubRenderer{}, nil)

	g1 := pipe.Submit([]byte("a"), 1)
	g2 := pipe.Submit([]byte("bb"), 1)
	if g2 <= g1 {
		t.Fatalf("generations not monotonic: %d then %d", g1, g2)
	}
	if pipe.Generation() != g2 {
		t.Fatalf("Generation() = %d, want %d", pipe.Generation(), g2)
	}

	seen := map[uint64]int{}
	for i := 0; i < 2; i++ {
		select {
		case res := <-pipe.Results():
			seen[res.Gen] = res.Img.Bounds().Dx()
			res.Img.Release()
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for results")
		}
	}
	if seen[g1] != 1 || seen[g2] != 2 {
		t.Fatalf("results mistagged: %v", seen)
	}
}

func TestPipelineBacklogKeepsCurrentResult(t *testing.T) {
	pipe := preview.NewPipeline(&stubRenderer{}, nil)

	// Fill the results buffer without draining it.
	for i := 0; i < 8; i++ {
		pipe.Submit([]byte("a"), 1)
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(pipe.Results()) < 8 {
		if time.Now().After(deadline) {
			t.Fatal("timed out filling the results buffer")
		}
		time.Sleep(time.Millisecond)
	}

	// The latest submission lands behind a full buffer. It must still
	// reach the consumer once the backlog drains; otherwise the view
	// could never catch up to the final edit.
	current := pipe.Submit([]byte("final"), 1)

	seen := map[uint64]bool{}
	for i := 0; i < 9; i++ {
		select {
		case res := <-pipe.Results():
			seen[res.Gen] = true
			res.Img.Release()
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out draining results, current delivered: %v", seen[current])
		}
	}
	if !seen[current] {
		t.Fatalf("current generation %d never delivered", current)
	}
}

func TestPipelineInvalidate(t *testing.T) {
	pipe := preview.NewPipeline(&stubRenderer{}, nil)
	gen := pipe.Submit([]byte("a"), 1)
	pipe.Invalidate()
	if pipe.Generation() == gen {
		t.Fatal("Invalidate did not supersede the submission")
	}
}
