package symbol

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// GrowTree resolves the class hierarchy below c: every descendant learns its
// parent, and receives its ancestors' member variables and methods. Afterwards
// c and all of its descendants are frozen
func (c *Class) GrowTree() error {
	if c.treeGrown {
		return newError(ErrPrematureMutation, c.className, "can't call grow_tree more than once")
	}
	c.establishAncestry()
	c.bequeathMemberVars()

	// A root's own methods are all novel
	if c.slots == nil {
		c.slots = make([]Slot, len(c.methods))
		for ind, method := range c.methods {
			c.slots[ind] = Slot{Kind: SlotNovel, Method: method}
		}
	}
	if err := c.bequeathMethods(); err != nil {
		return err
	}
	c.treeGrown = true

	log.WithFields(log.Fields{
		"root":    c.className,
		"classes": c.FamilyTreeSize(),
	}).Debug("Grew class tree")
	return nil
}

// establishAncestry lets every class below c know who its parent is
func (c *Class) establishAncestry() {
	for _, child := range c.Children() {
		child.parent = c.id
		child.establishAncestry()
	}
}

// bequeathMemberVars passes member variables down from parent to children, so
// that a child's variables always start with its parent's
func (c *Class) bequeathMemberVars() {
	for _, child := range c.Children() {
		vars := make([]*Variable, 0, len(c.memberVars)+len(child.memberVars))
		vars = append(vars, c.memberVars...)
		child.memberVars = append(vars, child.memberVars...)
		child.bequeathMemberVars()
	}
}

// bequeathMethods builds each child's method table from c's, preserving the
// exact slot order of c so that vtables line up
func (c *Class) bequeathMethods() error {
	for _, child := range c.Children() {
		slots := make([]Slot, 0, len(c.methods)+len(child.methods))
		overriding := make([]*Method, 0, len(child.methods))

		// Gather the methods the child inherits or overrides
		for _, method := range c.methods {
			childMethod := child.Method(method.MicroSym())
			if childMethod == nil {
				slots = append(slots, Slot{Kind: SlotInherited, Method: method})
				continue
			}
			if err := childMethod.checkOverride(method); err != nil {
				return err
			}
			overriding = append(overriding, childMethod)
			slots = append(slots, Slot{Kind: SlotOverridden, Method: childMethod, Overrides: method})
		}

		// Append the novel methods, skipping the ones that were just used as
		// overrides
		for _, method := range child.methods {
			if !slices.Contains(overriding, method) {
				slots = append(slots, Slot{Kind: SlotNovel, Method: method})
			}
		}

		if child.final {
			for ind := range slots {
				if !slots[ind].Method.Final() {
					slots[ind].Method = slots[ind].Method.Finalize()
				}
			}
		}

		methods := make([]*Method, len(slots))
		for ind, slot := range slots {
			methods[ind] = slot.Method
		}
		child.slots = slots
		child.methods = methods

		log.WithFields(log.Fields{
			"class":  child.className,
			"parent": c.className,
			"slots":  len(slots),
		}).Debug("Bequeathed methods")

		if err := child.bequeathMethods(); err != nil {
			return err
		}
		child.treeGrown = true
	}
	return nil
}

// FamilyTreeSize returns the number of classes in the tree rooted at c,
// including c
func (c *Class) FamilyTreeSize() int {
	count := 1
	for _, child := range c.Children() {
		count += child.FamilyTreeSize()
	}
	return count
}

// TreeToLadder flattens the tree rooted at c so that every class comes before
// all of its descendants, with siblings in the order they were added
func (c *Class) TreeToLadder() []*Class {
	ladder := make([]*Class, 0, c.FamilyTreeSize())
	return c.appendLadder(ladder)
}

func (c *Class) appendLadder(ladder []*Class) []*Class {
	ladder = append(ladder, c)
	for _, child := range c.Children() {
		ladder = child.appendLadder(ladder)
	}
	return ladder
}

// ConnectClasses links every registered class to the parent it declared, and
// returns the classes without a parent, in registration order
func (r *Registry) ConnectClasses() ([]*Class, error) {
	roots := []*Class{}
	for _, class := range r.classes {
		if class.parentName == "" {
			roots = append(roots, class)
			continue
		}
		parent := r.FetchByName(class.parentName)
		if parent == nil {
			return nil, newError(ErrInvalidHierarchy, class.className,
				"parent class '%s' not found", class.parentName)
		}
		if err := parent.AddChild(class); err != nil {
			return nil, err
		}
	}

	// Anything not reachable from a root is part of an inheritance cycle
	reached := make([]bool, len(r.classes))
	for _, root := range roots {
		for _, class := range root.TreeToLadder() {
			reached[class.id] = true
		}
	}
	for id, ok := range reached {
		if !ok {
			return nil, newError(ErrInvalidHierarchy, r.classes[id].className, "inheritance cycle detected")
		}
	}
	return roots, nil
}

// Build connects every registered class to its parent, resolves every
// declared type, and grows every tree. It returns the roots of the trees
func (r *Registry) Build() ([]*Class, error) {
	roots, err := r.ConnectClasses()
	if err != nil {
		return nil, err
	}
	if err := r.ResolveTypes(); err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := root.GrowTree(); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

// Ordered returns every class reachable from a root class, with each class
// before all of its descendants
func (r *Registry) Ordered() []*Class {
	ordered := make([]*Class, 0, len(r.classes))
	for _, class := range r.classes {
		if class.parentName == "" {
			ordered = class.appendLadder(ordered)
		}
	}
	return ordered
}
