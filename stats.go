package countmap

// Stats is a point-in-time snapshot of the table's shape.
type Stats struct {
	Size        int
	Capacity    int
	Threshold   int
	LoadFactor  float64
	MaxChainLen int
}

// Stats reports the table's current shape. MaxChainLen costs a full
// traversal.
func (m *Map[K]) Stats() Stats {
	return Stats{
		Size:        m.size,
		Capacity:    len(m.buckets),
		Threshold:   m.threshold,
		LoadFactor:  m.loadFactor,
		MaxChainLen: m.maxChainLen(),
	}
}
