/*
Copyright © 2025 SerialLab <dev@seriallab.io>
*/
package main

import "github.com/seriallab/go-serialdevice/cmd"

func main() {
	cmd.Execute()
}
