package main

import cmd "github.com/rohmanhakim/jsxtree/internal/cli"

func main() {
	cmd.Execute()
}
