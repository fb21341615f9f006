package datasetparser

import (
	"bytes"

	"vodplace/dataset"
)

// Fuzz is the go-fuzz entry over the dataset text parser. Anything the
// parser accepts must survive a write and reparse round trip.
func Fuzz(data []byte) int {
	p, err := dataset.ParseBytes(data)
	if err != nil {
		return 0
	}
	var buf bytes.Buffer
	if err = dataset.WriteProblem(&buf, p); err != nil {
		panic(err)
	}
	q, err := dataset.ParseBytes(buf.Bytes())
	if err != nil {
		panic(err)
	}
	if q.VideoCount != p.VideoCount || q.EndpointCount != p.EndpointCount || len(q.Demands) != len(p.Demands) {
		panic("dataset changed across a write and reparse")
	}
	return 1
}
