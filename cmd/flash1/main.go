// Command flash1 manages a Flash1 exchange account from the terminal.
package main

import "github.com/flash1-exchange/flash1-go/cmd/flash1/cmd"

func main() {
	cmd.Execute()
}
