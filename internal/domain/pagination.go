package domain

// CursorDirection selects how a page is positioned relative to a cursor
type CursorDirection int

const (
	// DirectionNone fetches the first page
	DirectionNone CursorDirection = iota
	// DirectionForward fetches the page after the cursor
	DirectionForward
	// DirectionBackward fetches the page before the cursor
	DirectionBackward
)

func (d CursorDirection) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// PageRequest describes which page of products to fetch
type PageRequest struct {
	Direction CursorDirection
	Cursor    string
	PageSize  int
}

// NewPageRequest builds a page request from the after/before cursors of a query string.
// When both are set, after wins.
func NewPageRequest(after, before string, pageSize int) PageRequest {
	switch {
	case after != "":
		return PageRequest{Direction: DirectionForward, Cursor: after, PageSize: pageSize}
	case before != "":
		return PageRequest{Direction: DirectionBackward, Cursor: before, PageSize: pageSize}
	default:
		return PageRequest{Direction: DirectionNone, PageSize: pageSize}
	}
}
