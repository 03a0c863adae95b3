package main

import "github.com/rahuljoshi07/contribot/cmd"

func main() {
	cmd.Execute()
}
