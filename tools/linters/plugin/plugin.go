// Package main builds the enum validator as a golangci-lint Go plugin:
//
//	go build -buildmode=plugin -o enumvalidator.so ./tools/linters/plugin
package main

import (
	"golang.org/x/tools/go/analysis"

	"github.com/faizanfirdousi/roast-my-gpa/tools/linters/enumvalidator"
)

type AnalyzerPlugin struct{}

func (*AnalyzerPlugin) GetAnalyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		enumvalidator.Analyzer,
	}
}

func New(conf any) ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{enumvalidator.Analyzer}, nil
}

// main is required for the package to build outside -buildmode=plugin; it is unused by the plugin loader.
func main() {}
