package page

import (
	"edu-platform/biz/application/dto/basic"
	"edu-platform/biz/infrastructure/consts"
)

// ParsePageOpt fills defaults and clamps the page size.
func ParsePageOpt(p *basic.PaginationOptions) (page int64, limit int64) {
	page, limit = consts.DefaultPage, consts.DefaultPageSize
	if p == nil {
		return page, limit
	}
	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p.Limit != nil && *p.Limit > 0 {
		limit = min(*p.Limit, consts.MaxPageSize)
	}
	return page, limit
}
