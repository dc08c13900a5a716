// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

// Package paginate describes a page window over a result set and renders
// navigation links for it. It never computes which rows belong to a page;
// the data source does that using Offset and PerPage.
package paginate

// DefaultPerPage is used when a page is built with a non-positive size.
const DefaultPerPage = 10

// Page is one window of a paginated result.
type Page struct {
	Number  int // 1-based
	PerPage int
	Total   int
}

// New returns a normalised page: PerPage defaults, Number is clamped to
// [1, LastPage].
func New(number, perPage, total int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	p := Page{Number: number, PerPage: perPage, Total: total}
	if p.Number > p.LastPage() {
		p.Number = p.LastPage()
	}
	if p.Number < 1 {
		p.Number = 1
	}
	return p
}

// LastPage is the number of the final page; an empty result has one page.
func (p Page) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Offset is the index of the first row on the page.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.PerPage
}

// From is the 1-based position of the first row shown, 0 when empty.
func (p Page) From() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// To is the 1-based position of the last row shown.
func (p Page) To() int {
	to := p.Offset() + p.PerPage
	if to > p.Total {
		to = p.Total
	}
	return to
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.LastPage() }
func (p Page) HasPages() bool { return p.LastPage() > 1 }

// Gap marks elided page numbers in a Window.
const Gap = 0

// Window lists the page numbers to show as links: the first and last two
// pages, eachSide pages around the current one, and Gap where pages are
// skipped.
func (p Page) Window(eachSide int) []int {
	last := p.LastPage()
	if eachSide < 0 {
		eachSide = 0
	}
	// small result sets show every page
	if last <= (eachSide*2)+6 {
		out := make([]int, 0, last)
		for i := 1; i <= last; i++ {
			out = append(out, i)
		}
		return out
	}

	keep := make(map[int]bool)
	for _, n := range []int{1, 2, last - 1, last} {
		keep[n] = true
	}
	for n := p.Number - eachSide; n <= p.Number+eachSide; n++ {
		if n >= 1 && n <= last {
			keep[n] = true
		}
	}

	var out []int
	prev := 0
	for n := 1; n <= last; n++ {
		if !keep[n] {
			continue
		}
		if prev != 0 && n > prev+1 {
			out = append(out, Gap)
		}
		out = append(out, n)
		prev = n
	}
	return out
}
