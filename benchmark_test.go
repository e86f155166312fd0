package safemap_test

import (
	"testing"

	"github.com/Krishna8167/safemap"
)

/*
BenchmarkInsert, BenchmarkFind and BenchmarkEraseThenCleanup measure the
core operation costs: one operation per b.N iteration, run with
go test -bench=. -benchmem to also see allocations.
*/

// BenchmarkInsert measures the cost of Insert on a previously-empty key,
// including the mutex Lock/Unlock and skip-list search/insert path.
func BenchmarkInsert(b *testing.B) {
	m := safemap.New[int, int, safemap.ForwardThenBackward, safemap.Linear]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it, _ := m.Insert(i, i)
		it.Close()
	}
}

// BenchmarkFind measures lookup cost against a fixed-size Map.
func BenchmarkFind(b *testing.B) {
	const n = 10000
	m := safemap.New[int, int, safemap.ForwardThenBackward, safemap.Linear]()
	for i := 0; i < n; i++ {
		it, _ := m.Insert(i, i)
		it.Close()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := m.Find(i % n)
		it.Close()
	}
}

// BenchmarkEraseThenCleanup measures the tombstone/collect path when no
// Iterator holds a pin, i.e. the common case where Erase collects
// immediately.
func BenchmarkEraseThenCleanup(b *testing.B) {
	m := safemap.New[int, int, safemap.ForwardThenBackward, safemap.Linear]()

	for i := 0; i < b.N; i++ {
		it, _ := m.Insert(i, i)
		it.Close()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Erase(i)
	}
}
