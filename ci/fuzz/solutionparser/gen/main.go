package main

import (
	"github.com/dvyukov/go-fuzz/gen"
)

var zdata = []string{
	"1\n0 1 3\n",
	"3\n0 1 3\n1 0\n2 2\n",
	"0\n",
	"1\n2 0 1 2 3 4\n",
	"2\n0 3\n0 3\n",
}

func main() {
	for _, data := range zdata {
		gen.Emit([]byte(data), nil, true)
	}
}
