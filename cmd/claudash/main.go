// Command claudash computes and displays Claude Code usage statistics.
package main

import "github.com/theirongolddev/claudash/cmd"

func main() {
	cmd.Execute()
}
