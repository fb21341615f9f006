package version

import (
	"flag"
	"fmt"
	"os"
)

// Define vodplace version consts
const (
	VodplaceMajor = 0
	VodplaceMinor = 2
	VodplacePatch = 0
)

var showVersion bool
var vstr string

func init() {
	vstr = fmt.Sprintf("%d.%d.%d", VodplaceMajor, VodplaceMinor, VodplacePatch)
	flag.BoolVar(&showVersion, "version", false, "show version and exit.")
}

// Str returns the dotted version string.
func Str() string {
	return vstr
}

// ShowVersion print version if -version flag is seted and return true
func ShowVersion() bool {
	if showVersion {
		fmt.Fprintln(os.Stdout, vstr)
	}
	return showVersion
}
