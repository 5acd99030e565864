// Command trayctl inspects and converts cable routing project files
// without starting the editor.
package main

import "cable-router/cmd/trayctl/cmd"

func main() {
	cmd.Execute()
}
