package vpath

// Item is a user selected entry: a file key or a folder prefix.
type Item struct {
	Path     string `json:"path"     validate:"required,vpath"`
	IsFolder bool   `json:"isFolder"`
}

// Prefix returns the folder prefix of a folder item.
func (i Item) Prefix() Prefix { return NewPrefix(i.Path) }

// Key returns the object key of a file item.
func (i Item) Key() Key { return NewKey(i.Path) }

// Name returns the display name of the item.
func (i Item) Name() string { return BaseName(i.Path) }
