// pkgsort rewrites package.json manifests into a canonical key order.
package main

import (
	"os"

	"github.com/hupe1980/pkgsort/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
