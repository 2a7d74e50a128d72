package strata

// --- Queries ---

// Layers returns the canvas's layer slice when filter is nil. The slice is
// the live backing array, not a copy; do not modify it. With a filter, a new
// slice of the matching layers is returned.
func (c *Canvas) Layers(filter func(*Layer) bool) []*Layer {
	if filter == nil {
		return c.layers
	}
	var out []*Layer
	for _, l := range c.layers {
		if filter(l) {
			out = append(out, l)
		}
	}
	return out
}

// Layer resolves id to a layer. It returns nil when nothing matches.
func (c *Canvas) Layer(id LayerID) *Layer {
	if id == nil {
		return nil
	}
	return c.resolveLayer(id)
}

// LayerGroup resolves id to a group's layers. The returned slice is the
// group index entry itself; do not modify it.
func (c *Canvas) LayerGroup(id GroupID) []*Layer {
	if id == nil {
		return nil
	}
	return c.resolveGroup(id)
}

// LayerIndex returns the position of the layer identified by id, or -1.
func (c *Canvas) LayerIndex(id LayerID) int {
	l := c.Layer(id)
	if l == nil {
		return -1
	}
	return c.position(l)
}

func (c *Canvas) position(l *Layer) int {
	for i, x := range c.layers {
		if x == l {
			return i
		}
	}
	return -1
}

// reindex stores every layer's position on the layer.
func (c *Canvas) reindex() {
	for i, l := range c.layers {
		l.index = i
	}
}

// --- Name and group indices ---

// updateName points the name index at l for its current name, dropping the
// entry for oldName when it still refers to l.
func (c *Canvas) updateName(l *Layer, oldName string) {
	if oldName != "" && oldName != l.Name && c.names[oldName] == l {
		delete(c.names, oldName)
	}
	if l.Name != "" {
		c.names[l.Name] = l
	}
}

// removeFromGroups drops l from every group in names, deleting groups that
// become empty. It returns l's position in the last group it was found in,
// or -1.
func (c *Canvas) removeFromGroups(l *Layer, names []string) int {
	at := -1
	for _, g := range names {
		members := c.groups[g]
		for i, m := range members {
			if m == l {
				at = i
				members = append(members[:i], members[i+1:]...)
				break
			}
		}
		if len(members) == 0 {
			c.deleteGroup(g)
		} else {
			c.groups[g] = members
		}
	}
	return at
}

// addToGroups inserts l into every group in names at position at (or
// appends when at is negative or past the end). A layer is never added to
// the same group twice.
func (c *Canvas) addToGroups(l *Layer, names []string, at int) {
	for _, g := range names {
		members, ok := c.groups[g]
		if !ok {
			c.groupOrder = append(c.groupOrder, g)
		}
		if contains(members, l) {
			continue
		}
		i := at
		if i < 0 || i > len(members) {
			i = len(members)
		}
		members = append(members, nil)
		copy(members[i+1:], members[i:])
		members[i] = l
		c.groups[g] = members
	}
}

func (c *Canvas) deleteGroup(g string) {
	delete(c.groups, g)
	for i, name := range c.groupOrder {
		if name == g {
			c.groupOrder = append(c.groupOrder[:i], c.groupOrder[i+1:]...)
			break
		}
	}
}

func contains(ls []*Layer, l *Layer) bool {
	for _, x := range ls {
		if x == l {
			return true
		}
	}
	return false
}

// --- Mutation ---

// SetLayer applies p to the layer identified by id. Name and group indices
// are kept in sync, "+=N"/"-=N" values are relative to the current value,
// and "change" fires with the properties that actually changed.
func (c *Canvas) SetLayer(id LayerID, p Patch) *Canvas {
	l := c.Layer(id)
	if l == nil || len(p) == 0 {
		return c
	}
	c.setLayer(l, p)
	return c
}

func (c *Canvas) setLayer(l *Layer, p Patch) {
	oldName := l.Name
	oldGroups := append([]string(nil), l.Groups...)

	changed := l.applyPatch(p)

	if _, ok := p["name"]; ok && l.live {
		c.updateName(l, oldName)
	}
	if _, ok := p["groups"]; ok && l.live {
		at := c.removeFromGroups(l, oldGroups)
		c.addToGroups(l, l.Groups, at)
	}
	if _, ok := p["type"]; ok {
		l.resolveDraw()
	}
	if _, ok := p["source"]; ok {
		c.bindSource(l)
	}
	if l.live {
		c.bindLayerEvents(l)
	}
	if len(changed) > 0 {
		c.triggerLayerEvent(l, EventChange, changed)
	}
}

// SetLayers applies p to every layer matching filter (all layers when
// filter is nil).
func (c *Canvas) SetLayers(p Patch, filter func(*Layer) bool) *Canvas {
	for _, l := range append([]*Layer(nil), c.Layers(filter)...) {
		c.setLayer(l, p)
	}
	return c
}

// SetLayerGroup applies p to every layer of a group.
func (c *Canvas) SetLayerGroup(id GroupID, p Patch) *Canvas {
	for _, l := range append([]*Layer(nil), c.LayerGroup(id)...) {
		c.setLayer(l, p)
	}
	return c
}

// MoveLayer moves a layer to index. Negative indexes count from the end of
// the list the layer is reinserted into, so -1 moves it to the top.
func (c *Canvas) MoveLayer(id LayerID, index int) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	from := c.position(l)
	if from < 0 {
		return c
	}
	c.layers = append(c.layers[:from], c.layers[from+1:]...)
	n := len(c.layers)
	if index < 0 {
		index += n + 1
	}
	index = max(0, min(index, n))
	c.layers = append(c.layers, nil)
	copy(c.layers[index+1:], c.layers[index:])
	c.layers[index] = l
	c.reindex()
	c.triggerLayerEvent(l, EventMove, nil)
	return c
}

// RemoveLayer removes a layer, its name entry and its group memberships,
// then fires "remove". The layer keeps its draw routine and can be added
// again with [Canvas.AddLayerObject].
func (c *Canvas) RemoveLayer(id LayerID) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	c.removeLayer(l)
	return c
}

func (c *Canvas) removeLayer(l *Layer) {
	i := c.position(l)
	if i < 0 {
		return
	}
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	if c.names[l.Name] == l {
		delete(c.names, l.Name)
	}
	c.removeFromGroups(l, l.Groups)
	if c.drag.layer == l {
		c.drag.reset()
	}
	if c.lastIntersected == l {
		c.lastIntersected = nil
	}
	l.live = false
	l.index = -1
	c.reindex()
	c.triggerLayerEvent(l, EventRemove, nil)
}

// RemoveLayers removes every layer matching filter, or all layers when
// filter is nil.
func (c *Canvas) RemoveLayers(filter func(*Layer) bool) *Canvas {
	for _, l := range append([]*Layer(nil), c.Layers(filter)...) {
		c.removeLayer(l)
	}
	if filter == nil {
		c.names = make(map[string]*Layer)
		c.groups = make(map[string][]*Layer)
		c.groupOrder = nil
	}
	return c
}

// RemoveLayerGroup removes every layer of a group.
func (c *Canvas) RemoveLayerGroup(id GroupID) *Canvas {
	for _, l := range append([]*Layer(nil), c.LayerGroup(id)...) {
		c.removeLayer(l)
	}
	return c
}

// AddLayerToGroup adds group to the layer's Groups.
func (c *Canvas) AddLayerToGroup(id LayerID, group string) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	for _, g := range l.Groups {
		if g == group {
			return c
		}
	}
	groups := append(append([]string(nil), l.Groups...), group)
	c.setLayer(l, Patch{"groups": groups})
	return c
}

// RemoveLayerFromGroup removes group from the layer's Groups.
func (c *Canvas) RemoveLayerFromGroup(id LayerID, group string) *Canvas {
	l := c.Layer(id)
	if l == nil {
		return c
	}
	groups := make([]string, 0, len(l.Groups))
	found := false
	for _, g := range l.Groups {
		if g == group {
			found = true
			continue
		}
		groups = append(groups, g)
	}
	if found {
		c.setLayer(l, Patch{"groups": groups})
	}
	return c
}

// --- Adding ---

// AddLayer builds a layer from p and appends it. It returns the new layer;
// when a layer with the same name already exists nothing is added and the
// existing layer is returned.
func (c *Canvas) AddLayer(p Patch) *Layer {
	return c.AddLayerAt(p, -1)
}

// AddLayerAt is AddLayer inserting at index (appending when index is
// negative or past the end).
func (c *Canvas) AddLayerAt(p Patch, index int) *Layer {
	l := NewLayer(c.cfg, p)
	l.Layer = true
	return c.addLayer(l, index)
}

// AddLayerObject adds a layer built with [NewLayer] or one that was removed
// earlier. Adding a layer that is already live is a no-op.
func (c *Canvas) AddLayerObject(l *Layer) *Layer {
	if l == nil {
		return nil
	}
	l.Layer = true
	return c.addLayer(l, -1)
}

func (c *Canvas) addLayer(l *Layer, index int) *Layer {
	if l.Draggable || len(l.DragGroups) > 0 {
		l.Layer = true
		l.Draggable = true
	}
	if !l.Layer || l.live {
		return l
	}
	if l.Name != "" {
		if existing, ok := c.names[l.Name]; ok && existing != l {
			return existing
		}
	}
	if l.draw == nil {
		l.resolveDraw()
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	l.Groups = append([]string(nil), l.Groups...)
	l.live = true
	l.running = make(map[string]bool)

	c.updateName(l, "")
	c.addToGroups(l, l.Groups, -1)
	c.bindSource(l)
	c.bindLayerEvents(l)
	if l.Type == "text" {
		c.MeasureText(l)
	}

	if index < 0 || index > len(c.layers) {
		index = len(c.layers)
	}
	c.layers = append(c.layers, nil)
	copy(c.layers[index+1:], c.layers[index:])
	c.layers[index] = l
	c.reindex()

	c.triggerLayerEvent(l, EventAdd, nil)
	return l
}

// Draw paints a shape immediately. When p requests persistence ("layer":
// true, or draggable) the shape is added as a layer first. Drawing a
// persistent layer that already exists draws that layer.
func (c *Canvas) Draw(p Patch) *Layer {
	l := NewLayer(c.cfg, p)
	l = c.addLayer(l, -1)
	if ctx := c.ctx(); ctx != nil && l.Visible && l.draw != nil {
		c.bindSource(l)
		c.drawOne(ctx, l)
	}
	return l
}
