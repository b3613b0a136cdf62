package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	Type  *Type
	View  string
	Limit int
}
