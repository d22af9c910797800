package main

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"testing"
)

// Flow keys as the extractor builds them: "ip|ip|proto".
func makeKeys(n int) []string {
	rng := rand.New(rand.NewSource(1))
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("10.0.%d.%d|192.168.%d.%d|TCP",
			rng.Intn(256), rng.Intn(256), rng.Intn(256), rng.Intn(256))
	}
	return keys
}

func BenchmarkFNV32a(b *testing.B) {
	keys := makeKeys(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := fnv.New32a()
		h.Write([]byte(keys[i%len(keys)]))
		_ = h.Sum32()
	}
}

func BenchmarkFNV64a(b *testing.B) {
	keys := makeKeys(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := fnv.New64a()
		h.Write([]byte(keys[i%len(keys)]))
		_ = h.Sum64()
	}
}

func BenchmarkMapKeyLookup(b *testing.B) {
	keys := makeKeys(1024)
	table := make(map[string]int, len(keys))
	for i, k := range keys {
		table[k] = i
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = table[keys[i%len(keys)]]
	}
}
