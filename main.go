package main

import "github.com/crystaldolphin/mailbridge/cmd"

func main() {
	cmd.Execute()
}
