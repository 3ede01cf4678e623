package service

const (
	defaultItemPerPage = 12
	maxItemPerPage     = 100
)

// Meta describes one page of an offset-paginated listing.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	ItemPerPage int   `json:"itemPerPage"`
	TotalItems  int64 `json:"totalItems"`
	PrevPage    *int  `json:"prevPage"`
	NextPage    *int  `json:"nextPage"`
	IsFirstPage bool  `json:"isFirstPage"`
	IsLastPage  bool  `json:"isLastPage"`
}

func normalizePage(page, itemPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if itemPerPage < 1 {
		itemPerPage = defaultItemPerPage
	}
	if itemPerPage > maxItemPerPage {
		itemPerPage = maxItemPerPage
	}
	return page, itemPerPage
}

func newMeta(page, itemPerPage int, totalItems int64) *Meta {
	lastPage := int((totalItems + int64(itemPerPage) - 1) / int64(itemPerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	meta := &Meta{
		CurrentPage: page,
		ItemPerPage: itemPerPage,
		TotalItems:  totalItems,
		IsFirstPage: page == 1,
		IsLastPage:  page >= lastPage,
	}
	if page > 1 {
		prev := page - 1
		meta.PrevPage = &prev
	}
	if page < lastPage {
		next := page + 1
		meta.NextPage = &next
	}
	return meta
}
