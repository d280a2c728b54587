package presenter_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/yamlcore/yamlcore/bytesource"
	"github.com/yamlcore/yamlcore/eventstream"
	"github.com/yamlcore/yamlcore/lexer"
	"github.com/yamlcore/yamlcore/parser"
	"github.com/yamlcore/yamlcore/presenter"
	"github.com/yamlcore/yamlcore/taglib"
	"github.com/yamlcore/yamlcore/token"
)

func TestPresenterRoundTripSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Presenter Round-Trip Suite")
}

func mustParse(src string) []token.Event {
	lex := lexer.New(bytesource.NewString([]byte(src)))
	p := parser.New(lex, taglib.NewCore())
	stream := eventstream.NewLazy(p)
	var evs []token.Event
	for {
		ev, err := stream.Next()
		Expect(err).NotTo(HaveOccurred())
		evs = append(evs, ev)
		if ev.Type == token.EndDocumentEvent {
			return evs
		}
	}
}

func renderWith(evs []token.Event, opts presenter.Options) string {
	var buf bytes.Buffer
	pr := presenter.New(&buf, taglib.NewCore(), opts)
	Expect(pr.Present(eventstream.NewBuffered(evs))).To(Succeed())
	return buf.String()
}

var _ = Describe("Presenter round-tripping", func() {
	fixtures := []string{
		"foo: bar\n",
		"- 1\n- 2\n- 3\n",
		"{a: 1, b: 2}\n",
		"outer:\n  inner: 1\n  list:\n    - x\n    - y\n",
	}

	styles := []presenter.Options{
		{Style: presenter.Default},
		{Style: presenter.Minimal},
		{Style: presenter.BlockOnly},
	}

	for _, src := range fixtures {
		src := src
		Describe("fixture "+src, func() {
			It("reparses to the same event shape under every non-JSON style", func() {
				original := mustParse(src)
				for _, opts := range styles {
					out := renderWith(original, opts)
					reparsed := mustParse(out)
					Expect(len(reparsed)).To(Equal(len(original)))
					for i := range original {
						Expect(reparsed[i].Type).To(Equal(original[i].Type))
						if original[i].Type == token.ScalarEvent {
							Expect(reparsed[i].Content).To(Equal(original[i].Content))
						}
					}
				}
			})
		})
	}

	It("collapses a small subtree to flow under Default style", func() {
		original := mustParse("outer:\n  a: 1\n  b: 2\nrest: x\n")
		out := renderWith(original, presenter.Options{Style: presenter.Default})
		Expect(out).To(ContainSubstring("{a: 1, b: 2}"))
	})

	It("rejects an alias in JSON style", func() {
		original := mustParse("- &x 1\n- *x\n")
		var buf bytes.Buffer
		pr := presenter.New(&buf, taglib.NewCore(), presenter.Options{Style: presenter.JSON})
		err := pr.Present(eventstream.NewBuffered(original))
		Expect(err).To(HaveOccurred())
		var jerr *presenter.JSONError
		Expect(err).To(BeAssignableToTypeOf(jerr))
	})
})
