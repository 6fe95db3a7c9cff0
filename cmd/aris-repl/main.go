// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"aris/repl"
)

func main() {
	fmt.Println("aris interactive proof shell — premise/step/subproof/end/verify/list/quit")
	repl.Start(os.Stdin, os.Stdout)
}
