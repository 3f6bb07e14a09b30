// Copyright © 2024 The col authors

package main

import "github.com/bieber/col/cmd"

func main() {
	cmd.Execute()
}
