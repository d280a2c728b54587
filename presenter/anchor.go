package presenter

import "github.com/yamlcore/yamlcore/token"

// referencedAnchors scans a buffered document's events and returns the
// set of anchor names some AliasEvent.Target actually refers to — the
// two-pass tidy scan spec.md §4.6/§9 describes.
func referencedAnchors(events []token.Event) map[string]bool {
	refs := make(map[string]bool)
	for _, ev := range events {
		if ev.Type == token.AliasEvent && ev.Target != "" {
			refs[ev.Target] = true
		}
	}
	return refs
}

// anchorToWrite reports the anchor name (possibly empty) this Presenter
// should actually write for a node carrying ev.Anchor, given the
// configured AnchorStyle and (for Tidy) the set of anchors some alias
// later references.
func (p *Presenter) anchorToWrite(anchor string, referenced map[string]bool) string {
	if anchor == "" {
		return ""
	}
	switch p.opts.AnchorStyle {
	case AnchorNone:
		return ""
	case AnchorTidy:
		if referenced[anchor] {
			return anchor
		}
		return ""
	default: // AnchorAlways
		return anchor
	}
}
