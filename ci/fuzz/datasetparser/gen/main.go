package main

import (
	"github.com/dvyukov/go-fuzz/gen"
)

var zdata = []string{
	"5 2 4 3 100\n50 50 80 30 110\n1000 3\n0 100\n2 200\n1 300\n500 0\n3 0 1500\n0 1 1000\n4 0 500\n1 0 1000\n",
	"1 1 1 1 10\n10\n100 1\n0 50\n0 0 1000\n",
	"1 1 0 1 10\n10\n100 0\n",
	"2 1 2 2 100\n30 40\n200 2\n0 10\n1 20\n0 0 500\n1 0 700\n",
	"0 0 0 1 0\n",
}

func main() {
	for _, data := range zdata {
		gen.Emit([]byte(data), nil, true)
	}
}
