package blocks

import (
	"sort"
	"strings"
	"sync"
)

// Registry manages the mapping from node type strings to block
// implementations with thread-safe operations. Type keys are matched
// case-insensitively, so "llmParse" and "llmparse" resolve to the same block.
type Registry struct {
	mu     sync.RWMutex
	blocks map[string]Block
}

// NewRegistry creates a new empty block registry.
func NewRegistry() *Registry {
	return &Registry{
		blocks: make(map[string]Block),
	}
}

// Register adds a block under the given type key. An existing block with the
// same key is replaced.
func (registry *Registry) Register(blockType string, block Block) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.blocks[strings.ToLower(blockType)] = block
}

// Get retrieves a block by type key (case-insensitive).
// Returns the block and true if found, nil and false otherwise.
func (registry *Registry) Get(blockType string) (Block, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	block, exists := registry.blocks[strings.ToLower(blockType)]
	return block, exists
}

// Has checks whether a block with the given type key exists.
func (registry *Registry) Has(blockType string) bool {
	_, exists := registry.Get(blockType)
	return exists
}

// Types returns the sorted list of registered type keys.
func (registry *Registry) Types() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	types := make([]string, 0, len(registry.blocks))
	for blockType := range registry.blocks {
		types = append(types, blockType)
	}
	sort.Strings(types)
	return types
}

// Size returns the number of registered blocks.
func (registry *Registry) Size() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.blocks)
}
