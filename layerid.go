package strata

import "regexp"

// LayerID identifies a layer: [Index], [Name], [Pattern] or a *Layer.
type LayerID interface {
	layerID()
}

// GroupID identifies a set of layers: [Group], [Pattern] or [GroupList].
type GroupID interface {
	groupID()
}

// Index selects a layer by position. Negative values count from the end.
type Index int

// Name selects a layer through the name index.
type Name string

// Group selects a group through the group index.
type Group string

// GroupList is an explicit set of layers, returned as is.
type GroupList []*Layer

// Pattern selects by regular expression: the first layer, in array order,
// whose name matches, or the first group, in group creation order, whose
// name matches.
type Pattern struct {
	Re *regexp.Regexp
}

// Match compiles expr into a Pattern. It panics if expr is invalid.
func Match(expr string) Pattern {
	return Pattern{Re: regexp.MustCompile(expr)}
}

func (Index) layerID()     {}
func (Name) layerID()      {}
func (Pattern) layerID()   {}
func (*Layer) layerID()    {}
func (Group) groupID()     {}
func (GroupList) groupID() {}
func (Pattern) groupID()   {}

// resolveLayer maps an id to a layer, or nil.
func (c *Canvas) resolveLayer(id LayerID) *Layer {
	switch v := id.(type) {
	case *Layer:
		if v == nil {
			return nil
		}
		return v
	case Index:
		i := int(v)
		if i < 0 {
			i += len(c.layers)
		}
		if i < 0 || i >= len(c.layers) {
			return nil
		}
		return c.layers[i]
	case Name:
		return c.names[string(v)]
	case Pattern:
		if v.Re == nil {
			return nil
		}
		for _, l := range c.layers {
			if l.Name != "" && v.Re.MatchString(l.Name) {
				return l
			}
		}
	}
	return nil
}

// resolveGroup maps a group id to its layers, or nil.
func (c *Canvas) resolveGroup(id GroupID) []*Layer {
	switch v := id.(type) {
	case GroupList:
		return v
	case Group:
		return c.groups[string(v)]
	case Pattern:
		if v.Re == nil {
			return nil
		}
		for _, name := range c.groupOrder {
			if v.Re.MatchString(name) {
				return c.groups[name]
			}
		}
	}
	return nil
}
