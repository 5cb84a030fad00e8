package service

// PageMeta 分页元数据，nextPage/prevPage 在边界处为 null。
type PageMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
	LastPage    int   `json:"lastPage"`
}

func newPageMeta(page, itemsPerPage int, total int64) PageMeta {
	lastPage := int((total + int64(itemsPerPage) - 1) / int64(itemsPerPage))
	meta := PageMeta{Total: total, CurrentPage: page, LastPage: lastPage}
	if next := page + 1; next <= lastPage {
		meta.NextPage = &next
	}
	if prev := page - 1; prev >= 1 {
		meta.PrevPage = &prev
	}
	return meta
}

// normalizePage 缺省或非法的分页参数回落到 page=1、itemsPerPage=10。
func normalizePage(page, itemsPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = 10
	}
	return page, itemsPerPage
}
