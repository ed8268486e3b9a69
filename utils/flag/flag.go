/*
flag Package set up cli flags shared across the client binaries

Usage:

	Flags listed in this package are shared across boundaries and
	binary-agnostic. For binary dependent flags please define them in their
	respective package.
*/

package flag

import (
	"flag"
)

const (
	CliClient = "cli_client"
)

var (
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName   = flag.String("service", CliClient, "name of the running client binary")
)

// ParseFlags must be called once from main before any flag is read.
func ParseFlags() {
	flag.Parse()
}
