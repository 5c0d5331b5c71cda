package source

// Pager reveals a fixed line set one page at a time.
type Pager struct {
	all      []string
	shown    int
	pageSize int
}

// NewPager returns a pager showing pageSize lines per page.
// Non-positive sizes show everything at once.
func NewPager(pageSize int) *Pager {
	return &Pager{pageSize: pageSize}
}

// Reset replaces the line set and returns the first page.
func (p *Pager) Reset(lines []string) []string {
	p.all = lines
	p.shown = 0
	visible, _ := p.Next()
	return visible
}

// Next reveals one more page. It returns every visible line and whether
// anything was added.
func (p *Pager) Next() ([]string, bool) {
	if p.shown >= len(p.all) {
		return p.Visible(), false
	}
	if p.pageSize <= 0 {
		p.shown = len(p.all)
	} else {
		p.shown = min(p.shown+p.pageSize, len(p.all))
	}
	return p.Visible(), true
}

func (p *Pager) Visible() []string { return p.all[:p.shown] }
func (p *Pager) HasMore() bool     { return p.shown < len(p.all) }
func (p *Pager) Total() int        { return len(p.all) }
