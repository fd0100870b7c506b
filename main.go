package main

import "main/launch"

func main() {
	launch.StartProgramme()
}
