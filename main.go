package main

import "github.com/khrees2412/resumatch/cmd"

func main() {
	cmd.Execute()
}
