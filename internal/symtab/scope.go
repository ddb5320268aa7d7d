package symtab

import (
	"strconv"
)

// ScopeKind distinguishes the reserved scopes from scene and item scopes.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopePocket
	ScopeScene
	ScopeItem
)

// Scope names where a symbol lives. Reserved scopes can never collide with a
// scene id because the kind is part of the key.
type Scope struct {
	Kind    ScopeKind
	SceneID int
	Item    string
}

var (
	Global = Scope{Kind: ScopeGlobal}
	Pocket = Scope{Kind: ScopePocket}
)

// SceneScope is the local scope of scene $id.
func SceneScope(id int) Scope {
	return Scope{Kind: ScopeScene, SceneID: id}
}

// ItemScope is the attribute scope of item name.
func ItemScope(name string) Scope {
	return Scope{Kind: ScopeItem, Item: name}
}

// Key is the scope half of a symbol key.
func (s Scope) Key() string {
	switch s.Kind {
	case ScopeGlobal:
		return "GLOBAL"
	case ScopePocket:
		return "POCKET"
	case ScopeScene:
		return "scene:" + strconv.Itoa(s.SceneID)
	default:
		return "item:" + s.Item
	}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeScene:
		return "$" + strconv.Itoa(s.SceneID)
	case ScopeItem:
		return s.Item
	default:
		return s.Key()
	}
}
