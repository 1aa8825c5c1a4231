// Command generate-config writes a config file with the default values to
// standard out.
package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"headsupholdem-server/internal/config"
)

func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
