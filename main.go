package main

import "github.com/Rorical/BloodDesk/cmd"

func main() {
	cmd.Execute()
}
