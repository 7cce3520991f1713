package sortable

// String is a sortable wrapper for the built-in string type, ordered
// byte-wise like the < operator on strings.
type String string

var _ Sortable[String] = (*String)(nil)

func (s String) Equals(other String) bool {
	return string(s) == string(other)
}

func (s String) LessThan(other String) bool {
	return string(s) < string(other)
}
