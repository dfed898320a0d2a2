package main

import (
	"github.com/nguyentranbao-ct/support-desk/cmd"
)

func main() {
	cmd.Execute()
}
