package rewriter

import (
	"sync"
	"testing"
)

func TestFreshAtomSerialsAreUnique(t *testing.T) {
	gensym := NewGenSym()
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		atom := gensym.FreshAtom("t")
		if seen[atom.Serial] {
			t.Fatalf("Serial %d issued twice", atom.Serial)
		}
		seen[atom.Serial] = true
	}
}

func TestFreshAtomConcurrent(t *testing.T) {
	gensym := NewGenSym()
	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	serials := make([][]uint64, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				serials[w] = append(serials[w], gensym.FreshAtom("t").Serial)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for _, batch := range serials {
		for _, serial := range batch {
			if seen[serial] {
				t.Fatalf("Serial %d issued twice", serial)
			}
			seen[serial] = true
		}
	}
	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d distinct serials, got %d", workers*perWorker, len(seen))
	}
}
