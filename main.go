package main

import "github.com/inovacc/clockr/cmd"

func main() {
	cmd.Execute()
}
