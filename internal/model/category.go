package model

// Category maps a short code typed in chat to a display name.
type Category struct {
	Code string
	Name string
}
