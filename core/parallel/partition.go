package parallel

// Partition is a half-open interval [From, To) over positions in an index
// set, assigned to exactly one worker.
type Partition struct {
	From int
	To   int
}

// NewPartition builds a partition from a start position and a length.
func NewPartition(start, length int) Partition {
	return Partition{From: start, To: start + length}
}

// Len returns the number of positions covered by the partition.
func (p Partition) Len() int {
	return p.To - p.From
}

// SplitSameStride slices [0, n) into k contiguous partitions that all use
// the same stride n/k, computed by integer division. When n is not evenly
// divisible by k the positions past k*(n/k) belong to no partition; callers
// that need full coverage must account for the dropped remainder themselves.
func SplitSameStride(n, k int) []Partition {
	stride := n / k
	partitions := make([]Partition, 0, k)
	for i := 0; i < k; i++ {
		partitions = append(partitions, NewPartition(i*stride, stride))
	}
	return partitions
}
