package parser

import "github.com/yamlcore/yamlcore/token"

// parseDocument consumes one complete document — optional directives,
// optional "---", exactly one node, optional "..." — and queues its
// StartDocument/.../EndDocument events. p.cur is the first token of the
// document on entry; on return it is the first token of whatever
// follows (another document's directives/marker, or stream end).
func (p *Parser) parseDocument() error {
	var version struct {
		set          bool
		major, minor int8
	}
	var directives []token.TagDirective
	p.handles = p.tags.DefaultHandles()
	p.anchors = make(map[string]bool)

	for {
		switch p.cur.Kind {
		case token.YamlDirectiveToken:
			if version.set {
				return p.errorf(p.cur.Start, "duplicate %%YAML directive")
			}
			version.set = true
			version.major, version.minor = p.cur.Major, p.cur.Minor
			if (version.major != 1 || version.minor != 2) && p.OnVersionMismatch != nil {
				p.OnVersionMismatch(version.major, version.minor)
			}
			if err := p.advance(); err != nil {
				return err
			}
		case token.TagDirectiveToken:
			p.handles.Declare(p.cur.Handle, p.cur.Prefix)
			directives = append(directives, token.TagDirective{Handle: p.cur.Handle, Prefix: p.cur.Prefix})
			if err := p.advance(); err != nil {
				return err
			}
		case token.UnknownDirectiveToken:
			// Unrecognized directives are skipped, with neither an error
			// nor a warning.
			if err := p.advance(); err != nil {
				return err
			}
		default:
			goto afterDirectives
		}
	}
afterDirectives:

	explicit := false
	start := p.cur.Start
	if p.cur.Kind == token.DirectivesEndToken {
		explicit = true
		start = p.cur.Start
		if err := p.advance(); err != nil {
			return err
		}
	}

	startEv := token.Event{
		Type:  token.StartDocumentEvent,
		Start: start,
	}
	if version.set {
		startEv.VersionMajor, startEv.VersionMinor = version.major, version.minor
	}
	startEv.TagDirectives = directives
	p.emit(startEv)

	if p.cur.Kind == token.StreamEndToken || p.cur.Kind == token.DocumentEndToken || p.cur.Kind == token.DirectivesEndToken {
		// An empty document: "---\n---\n" or a document with nothing
		// before the stream ends. Its single node is an implicit null
		// scalar.
		p.emit(token.Event{Type: token.ScalarEvent, Start: p.cur.Start, End: p.cur.Start, Implicit: true})
	} else {
		if err := p.parseNode(0, false); err != nil {
			return err
		}
	}

	end := p.cur.Start
	if p.cur.Kind == token.DocumentEndToken {
		end = p.cur.End
		if err := p.advance(); err != nil {
			return err
		}
	} else if explicit {
		// implicit document end: no trailing "..." required
	}
	p.emit(token.Event{Type: token.EndDocumentEvent, Start: end, End: end})
	return nil
}
