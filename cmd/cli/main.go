// Command cli is the clinicdesk operator command line.
package main

import (
	"os"

	"clinicdesk/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
