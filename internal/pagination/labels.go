package pagination

// Canonical field names of a rendered page.
const (
	FieldItems         = "items"
	FieldItemCount     = "itemCount"
	FieldPageSize      = "pageSize"
	FieldCurrentPage   = "currentPage"
	FieldTotalPages    = "totalPages"
	FieldHasPrevPage   = "hasPrevPage"
	FieldHasNextPage   = "hasNextPage"
	FieldPrevPage      = "prevPage"
	FieldNextPage      = "nextPage"
	FieldPagingCounter = "pagingCounter"

	// FieldMeta has no value of its own. When labelled, every metadata field
	// is nested under the label instead of sitting beside the items.
	FieldMeta = "meta"
)

// Labels maps canonical field names to output names.
type Labels map[string]string

func (l Labels) name(field string) string {
	if v, ok := l[field]; ok && v != "" {
		return v
	}
	return field
}

// CommentLabels is the vocabulary used by comment listings.
var CommentLabels = Labels{
	FieldItems:         "commentsList",
	FieldItemCount:     "commentCount",
	FieldPageSize:      "commentsPerPage",
	FieldCurrentPage:   "currentPage",
	FieldTotalPages:    "totalPages",
	FieldHasPrevPage:   "hasPrev",
	FieldHasNextPage:   "hasNext",
	FieldPrevPage:      "prev",
	FieldNextPage:      "next",
	FieldPagingCounter: "pageCounter",
	FieldMeta:          "paginator",
}
