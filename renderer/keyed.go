package renderer

// patchKeyedChildren reconciles two child lists in four phases: the common
// prefix, the common suffix, a pure append or truncate, and finally the
// unknown middle where old nodes are matched by key (or by a scan for
// unkeyed ones), unmatched nodes are removed, and nodes outside the longest
// increasing run of old positions are moved.
func (r *Renderer) patchKeyedChildren(c1, c2 []*VNode, container, parentAnchor HostNode, parent *Instance) error {
	i := 0
	l2 := len(c2)
	e1 := len(c1) - 1
	e2 := l2 - 1

	// prefix
	for i <= e1 && i <= e2 {
		n1, n2 := c1[i], c2[i]
		if !isSameVNodeType(n1, n2) {
			break
		}
		if err := r.patch(n1, n2, container, nil, parent); err != nil {
			return err
		}
		i++
	}

	// suffix
	for i <= e1 && i <= e2 {
		n1, n2 := c1[e1], c2[e2]
		if !isSameVNodeType(n1, n2) {
			break
		}
		if err := r.patch(n1, n2, container, nil, parent); err != nil {
			return err
		}
		e1--
		e2--
	}

	// only new nodes left
	if i > e1 {
		if i <= e2 {
			anchor := parentAnchor
			if nextPos := e2 + 1; nextPos < l2 {
				anchor = c2[nextPos].El
			}
			for ; i <= e2; i++ {
				if err := r.patch(nil, c2[i], container, anchor, parent); err != nil {
					return err
				}
			}
		}
		return nil
	}

	// only old nodes left
	if i > e2 {
		for ; i <= e1; i++ {
			r.unmount(c1[i], true)
		}
		return nil
	}

	s1, s2 := i, i
	keyToNewIndex := make(map[any]int, e2-s2+1)
	for j := s2; j <= e2; j++ {
		if key := c2[j].Key; key != nil {
			keyToNewIndex[key] = j
		}
	}

	patched := 0
	toBePatched := e2 - s2 + 1
	moved := false
	maxNewIndexSoFar := 0
	// old index + 1 for every new position; 0 means the node is new
	newIndexToOldIndex := make([]int, toBePatched)

	for oldIndex := s1; oldIndex <= e1; oldIndex++ {
		prev := c1[oldIndex]
		if patched >= toBePatched {
			r.unmount(prev, true)
			continue
		}

		newIndex := -1
		if prev.Key != nil {
			if j, ok := keyToNewIndex[prev.Key]; ok {
				newIndex = j
			}
		} else {
			for j := s2; j <= e2; j++ {
				if newIndexToOldIndex[j-s2] == 0 && isSameVNodeType(prev, c2[j]) {
					newIndex = j
					break
				}
			}
		}

		if newIndex < 0 || newIndexToOldIndex[newIndex-s2] != 0 || !isSameVNodeType(prev, c2[newIndex]) {
			r.unmount(prev, true)
			continue
		}

		newIndexToOldIndex[newIndex-s2] = oldIndex + 1
		if newIndex >= maxNewIndexSoFar {
			maxNewIndexSoFar = newIndex
		} else {
			moved = true
		}
		if err := r.patch(prev, c2[newIndex], container, nil, parent); err != nil {
			return err
		}
		patched++
	}

	var stable []int
	if moved {
		stable = longestIncreasingSubsequence(newIndexToOldIndex)
	}
	j := len(stable) - 1

	// walk backwards so the node after the current one is already in place
	for k := toBePatched - 1; k >= 0; k-- {
		nextIndex := s2 + k
		next := c2[nextIndex]
		anchor := parentAnchor
		if nextIndex+1 < l2 {
			anchor = c2[nextIndex+1].El
		}

		switch {
		case newIndexToOldIndex[k] == 0:
			if err := r.patch(nil, next, container, anchor, parent); err != nil {
				return err
			}
		case moved:
			if j < 0 || k != stable[j] {
				r.move(next, container, anchor)
			} else {
				j--
			}
		}
	}
	return nil
}
