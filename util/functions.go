package util

import (
	"log"
	"math/bits"
	"runtime"
	"sort"
)

// BitsFor returns the number of bits needed to store the values 0..n-1,
// i.e. ceil(log2(n)).
func BitsFor(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}

func LogMemory() {
	s := &runtime.MemStats{}
	runtime.ReadMemStats(s)
	log.Println("*** Memory Info ***")
	log.Println("Bytes Allocated InUse:\t", s.Alloc)
	log.Println("Mallocs:\t\t", s.Mallocs)
	log.Println("Frees:\t\t\t", s.Frees)
	log.Println("Heap Allocated InUse:\t", s.HeapAlloc)
	log.Println("Heap Releases:\t\t", s.HeapReleased)
	log.Println("Heap Objects:\t\t", s.HeapObjects)
	log.Println("Stack Allocated InUse:\t", s.StackInuse)
	log.Println("MSpan In Use:\t\t", s.MSpanInuse)
	log.Println("MCache In Use:\t\t", s.MCacheInuse)
	log.Println("*** ***")
}

type TopNStrIntDatum struct {
	S string
	N int
}

type TopNStrIntData []TopNStrIntDatum

func (arr TopNStrIntData) Len() int {
	return len(arr)
}

func (arr TopNStrIntData) Swap(a, b int) {
	arr[a], arr[b] = arr[b], arr[a]
}

func (arr TopNStrIntData) Less(a, b int) bool {
	return arr[a].N > arr[b].N
}

// GetTopNStrInt returns the n entries of m with the largest counts.
func GetTopNStrInt(m map[string]int, n int) []TopNStrIntDatum {
	data := make(TopNStrIntData, len(m))
	var i int
	for k, v := range m {
		data[i] = TopNStrIntDatum{k, v}
		i++
	}
	sort.Sort(data)
	return data[:min(len(data), n)]
}
