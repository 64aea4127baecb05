package domain

// Record is implemented by every stored entity kind.
type Record interface {
	RecordID() string
}
