package ast

import (
	"maps"
	"slices"
)

// Program is the root of a compilation unit.
type Program struct {
	Pos
	Blocks *Blocks
}

func (*Program) Kind() string { return "program" }

// Blocks holds the top-level declarations. Scenes and items are keyed by
// their declared id so duplicates are found without a scan.
type Blocks struct {
	Pos
	Scenes map[int]*SceneBlock
	Items  map[string]*ItemBlock
	Starts []*StartState
}

func (*Blocks) Kind() string { return "blocks" }

// NewBlocks returns empty top-level collections.
func NewBlocks() *Blocks {
	return &Blocks{
		Scenes: make(map[int]*SceneBlock),
		Items:  make(map[string]*ItemBlock),
	}
}

// SceneIDs returns scene ids in ascending order.
func (b *Blocks) SceneIDs() []int {
	return slices.Sorted(maps.Keys(b.Scenes))
}

// ItemNames returns item names in ascending order.
func (b *Blocks) ItemNames() []string {
	return slices.Sorted(maps.Keys(b.Items))
}

// SceneBlock is `scene $N { setup: ... action: ... cleanup: ... }`.
type SceneBlock struct {
	Pos
	ID      int
	Setup   *Suite
	Action  *Suite
	Cleanup *Suite
}

func (*SceneBlock) Kind() string { return "scene_block" }

// ItemBlock is `item name(params) { body }`.
type ItemBlock struct {
	Pos
	Name   string
	Params []string
	Body   *Suite
}

func (*ItemBlock) Kind() string { return "item_block" }

// StartState is `start: $N`.
type StartState struct {
	Pos
	Scene int
}

func (*StartState) Kind() string { return "start_state" }

// Suite is a statement list. Every body, including an empty one, is a Suite.
type Suite struct {
	Pos
	Stmts []Stmt
}

func (*Suite) Kind() string { return "suite" }

// Empty reports whether the suite has no statements.
func (s *Suite) Empty() bool {
	return s == nil || len(s.Stmts) == 0
}
