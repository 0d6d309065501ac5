// Command soiademo runs a demo soia RPC service over the example geo
// records, and offers a schema-free debug dump of soia-encoded bytes. It is
// the end-to-end consumer of the runtime core: module registration (the geo
// package's init), the record codecs, the RPC envelope, and the wire
// debugger all run under it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "soiademo",
		Short:         "demo soia RPC service and wire tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newDumpCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
