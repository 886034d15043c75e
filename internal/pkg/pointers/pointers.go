package pointers

// String returns a pointer to v, for optional columns such as a product
// description.
func String(v string) *string { return &v }
