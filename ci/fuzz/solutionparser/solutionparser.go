package solutionparser

import (
	"bytes"

	"vodplace/dataset"
	"vodplace/place"
	"vodplace/score"
)

const exampleText = "5 2 4 3 100\n" +
	"50 50 80 30 110\n" +
	"1000 3\n" +
	"0 100\n" +
	"2 200\n" +
	"1 300\n" +
	"500 0\n" +
	"3 0 1500\n" +
	"0 1 1000\n" +
	"4 0 500\n" +
	"1 0 1000\n"

var prob *dataset.Problem

func init() {
	var err error
	if prob, err = dataset.ParseBytes([]byte(exampleText)); err != nil {
		panic(err)
	}
}

// Fuzz feeds arbitrary submission text at a small fixed dataset. Loaded
// placements may overrun capacity on purpose so they stay visible to
// validating, so scoring and validating only have to stay panic free and
// a rewrite must load again.
func Fuzz(data []byte) int {
	pl, err := dataset.ParseSolution(bytes.NewReader(data), prob)
	if err != nil {
		return 0
	}
	score.Evaluate(prob, pl)
	place.Validate(prob, pl)
	var buf bytes.Buffer
	if err = dataset.WriteSolution(&buf, pl); err != nil {
		panic(err)
	}
	if _, err = dataset.ParseSolution(bytes.NewReader(buf.Bytes()), prob); err != nil {
		panic(err)
	}
	return 1
}
