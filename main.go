package main

import "github.com/kamilpajak/examinator/cmd/examinator"

func main() {
	examinator.Execute()
}
