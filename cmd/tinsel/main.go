package main

import "github.com/ThatOtherAndrew/Tinsel/cmd"

func main() {
	cmd.Execute()
}
