package main

import "github.com/selamanalytics/fidash/cmd"

func main() {
	cmd.Execute()
}
