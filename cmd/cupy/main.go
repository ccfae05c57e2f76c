// Package main provides the cupy sort-bridge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fundou/cupy/backend/host"
	"github.com/fundou/cupy/thrust"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		dev := host.NewDevice()
		sorter := thrust.New(dev, host.NewBackend(dev))
		fmt.Printf("cupy sort bridge %s\n", version)
		fmt.Printf("backend build version: %d\n", sorter.BuildVersion())
		return
	}

	fmt.Println("cupy - device sort dispatch bridge")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version and backend build version")
}
