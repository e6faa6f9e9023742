package library

var categories = [...]string{
	"Fiction",
	"Non-Fiction",
	"Science Fiction",
	"Fantasy",
	"Biography",
	"History",
}

// Categories returns the fixed category labels in display order.
// The labels are not linked to any book.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories[:])
	return out
}
