// Command mmverify checks Metamath proof databases.
package main

import (
	"os"

	"github.com/cwbudde/mmverify/cmd/mmverify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
