// timecalc is a calculator for durations: it evaluates time expressions and
// converts between time units from millisecond to year.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/timecalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
