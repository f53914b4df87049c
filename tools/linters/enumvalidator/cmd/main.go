package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/faizanfirdousi/roast-my-gpa/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
