package presenter

// writeTag emits a resolved tag URI per spec.md §4.6: "!!" compression
// against the library's secondary prefix, "!local" for bang-prefixed
// URIs, verbatim "!<uri>" otherwise, and nothing at all for the two
// non-specific tags.
func (p *Presenter) writeTag(uri string) {
	if uri == "" || uri == "?" {
		return
	}
	if uri == "!" {
		p.w.str("! ")
		return
	}
	handle, suffix, ok := p.tags.Shorthand(uri)
	if ok {
		p.w.str(handle)
		p.w.str(suffix)
		p.w.byte(' ')
		return
	}
	p.w.byte('!')
	p.w.byte('<')
	p.w.str(uri)
	p.w.byte('>')
	p.w.byte(' ')
}
