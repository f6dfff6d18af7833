package store

// Parcel is a single indexed parcel, with its prefix in each case used by
// generated symbols.
type Parcel struct {
	Name        string
	Nickname    string
	Prefix      string
	UpperPrefix string
	CapsPrefix  string
	Included    bool
}

// Class is a single indexed class.
type Class struct {
	Name     string
	Parcel   string
	Position int
	// Empty for root and inert classes
	Parent          string
	Nickname        string
	FullStructSym   string
	FullVtableVar   string
	FullIvarsOffset string
	IncludeH        string
	Final           bool
	Inert           bool
}

// MethodSlot is one entry of a class's method table.
type MethodSlot struct {
	Class string
	Slot  int
	// Method name as declared
	MacroSym string
	// One of "novel", "inherited" or "overridden"
	Kind string
	// Class whose implementation fills the slot
	DeclaredIn    string
	FullMethodSym string
	ImpFunc       string
	Final         bool
	Abstract      bool
}

// MemberVar is one instance variable in a class's layout.
type MemberVar struct {
	Class      string
	Position   int
	Name       string
	Type       string
	DeclaredIn string
}
