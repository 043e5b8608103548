// cmd/bsprimer/main.go
package main

import (
	"bsprimer/internal/app"
	"bsprimer/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
