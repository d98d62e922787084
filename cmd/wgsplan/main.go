// Command wgsplan turns an HCL pipeline definition into the task graph of a
// whole genome shotgun analysis.
package main

import (
	"context"
	"os"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
