// Package builtin assembles the standard block registry from the built-in
// block implementations. It exists as a separate package so that the blocks
// package (the contract) never depends on its own implementations.
package builtin

import (
	"github.com/flowcanvas/flowcanvas/blocks"
	"github.com/flowcanvas/flowcanvas/blocks/llmparse"
	"github.com/flowcanvas/flowcanvas/blocks/transform"
	"github.com/flowcanvas/flowcanvas/blocks/userinput"
	"github.com/flowcanvas/flowcanvas/blocks/webfetch"
)

// Default returns a registry pre-populated with every built-in block:
// userInput, llmParse, webFetch, and transform.
func Default() *blocks.Registry {
	registry := blocks.NewRegistry()
	registry.Register(userinput.Type, userinput.New())
	registry.Register(llmparse.Type, llmparse.New())
	registry.Register(webfetch.Type, webfetch.New())
	registry.Register(transform.Type, transform.New())
	return registry
}
