package model

// Field is one declared field of a class.
type Field struct {
	Name      string
	Type      string
	Modifiers Modifiers

	// Parent is the owning class.
	Parent *Class
	// LinkedTypes are the project classes named by Type, resolved by the linking pass.
	LinkedTypes []*Class
}

// ID returns the field identifier qualified by its class full name.
func (f *Field) ID() string {
	if f.Parent == nil {
		return f.Name
	}

	return f.Parent.FullName + "." + f.Name
}
