package main

import "github.com/init-pkg/report-parser/internal/bootstrap"

func main() {
	bootstrap.Run()
}
