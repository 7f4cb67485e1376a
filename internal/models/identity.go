package models

// Identity is implemented by every person record the registry displays in lists and badges.
type Identity interface {
	Identifier() int
	DisplayInfo() string
}

var (
	_ Identity = (*Student)(nil)
	_ Identity = (*Teacher)(nil)
)
