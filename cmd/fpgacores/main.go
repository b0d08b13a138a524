package main

import "github.com/OpenResearchInstitute/fpga-cores/cmd/fpgacores/cmd"

func main() {
	cmd.Execute()
}
