package model

// Tag is a label shared across questions via a many-to-many association.
// Names are unique, compared case-sensitively: "Python" and "python" are
// two different tags.
type Tag struct {
	ID   int64
	Name string
}
