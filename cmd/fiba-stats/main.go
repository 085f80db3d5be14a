// Command fiba-stats scrapes game statistics and rosters from fiba.basketball.
package main

import "github.com/pfrederiksen/fiba-stats/internal/cli"

func main() {
	cli.Execute()
}
