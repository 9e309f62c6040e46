package bridge_test

import (
	"bytes"
	"log"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/griddlepan/internal/bridge"
	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/sim"
)

var _ = Describe("Registry", func() {
	var (
		reg  *bridge.Registry
		host *sim.Host
		el   bridge.Element
		logs *bytes.Buffer
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		reg = bridge.NewRegistry()
		reg.SetLogger(log.New(logs, "", 0))

		host = sim.NewHost(0, 200)
		host.SetContent(pan.DefaultContainer, 600)
		el = bridge.NewElement(host, nil)
	})

	Describe("Apply", func() {
		It("creates one widget per element", func() {
			w := reg.Apply(el, nil)
			Expect(w).NotTo(BeNil())
			Expect(w.Initialized()).To(BeTrue())
			Expect(reg.Len()).To(Equal(1))

			again := reg.Apply(el, nil)
			Expect(again).To(BeIdenticalTo(w))
			Expect(reg.Len()).To(Equal(1))
		})

		It("merges options and re-initializes an existing widget", func() {
			w := reg.Apply(el, nil)
			host.Enter()
			host.MovePointer(200)
			for i := 0; i < 5; i++ {
				host.Frame()
			}
			Expect(w.State().RunningOffset).NotTo(BeZero())

			reg.Apply(el, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
			Expect(w.Options().PauseOnMouseOut).To(BeFalse())
			Expect(w.State().RunningOffset).To(BeZero())
			Expect(w.Playing()).To(BeTrue())
		})

		It("never doubles the render loop on re-apply", func() {
			reg.Apply(el, nil)
			host.Frame()
			reg.Apply(el, nil)
			reg.Apply(el, nil)
			Expect(host.PendingFrames()).To(Equal(1))
			Expect(host.MoveListeners()).To(Equal(1))
		})

		It("keeps elements independent", func() {
			other := sim.NewHost(0, 100)
			other.SetContent(pan.DefaultContainer, 300)
			otherEl := bridge.NewElement(other, nil)

			a := reg.Apply(el, &pan.Override{PauseOnMouseOut: pan.Bool(false)})
			b := reg.Apply(otherEl, nil)
			Expect(a).NotTo(BeIdenticalTo(b))
			Expect(reg.Len()).To(Equal(2))

			host.MovePointer(200)
			Expect(a.State().TargetOffset).To(Equal(-400.0))
			Expect(b.State().TargetOffset).To(BeZero())
		})
	})

	Describe("Call", func() {
		BeforeEach(func() {
			reg.Apply(el, nil)
		})

		It("applies option without re-initializing", func() {
			w, ok := reg.Widget(el.ID)
			Expect(ok).To(BeTrue())
			speed := w.State().Speed

			err := reg.Call(el.ID, "option", &pan.Override{IsResizable: pan.Bool(true)})
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Options().IsResizable).To(BeTrue())
			Expect(w.State().Speed).To(Equal(speed))
		})

		It("accepts an override by value", func() {
			err := reg.Call(el.ID, "option", pan.Override{Container: pan.String(".strip")})
			Expect(err).NotTo(HaveOccurred())
			w, _ := reg.Widget(el.ID)
			Expect(w.Options().Container).To(Equal(".strip"))
		})

		It("invokes before and end callbacks with the element", func() {
			var seen []string
			Expect(reg.Call(el.ID, "option", &pan.Override{
				Before: func(e pan.Element) {
					Expect(e).To(BeIdenticalTo(host))
					seen = append(seen, "before")
				},
				End: func(pan.Element) { seen = append(seen, "end") },
			})).To(Succeed())

			Expect(reg.Call(el.ID, "before")).To(Succeed())
			Expect(reg.Call(el.ID, "end")).To(Succeed())
			Expect(seen).To(Equal([]string{"before", "end"}))
		})

		It("rejects private methods", func() {
			err := reg.Call(el.ID, "_init")
			Expect(err).To(MatchError(bridge.ErrPrivateCommand))
			Expect(logs.String()).To(ContainSubstring("_init"))
		})

		It("rejects unknown methods", func() {
			err := reg.Call(el.ID, "explode")
			Expect(err).To(MatchError(bridge.ErrUnknownCommand))
			Expect(logs.String()).To(ContainSubstring("no such method"))
		})

		It("rejects calls before initialization", func() {
			err := reg.Call(uuid.New(), "before")
			Expect(err).To(MatchError(bridge.ErrNotInitialized))
			Expect(logs.String()).To(ContainSubstring("before"))
		})

		It("rejects option without a usable argument", func() {
			Expect(reg.Call(el.ID, "option")).To(MatchError(bridge.ErrInvalidArgument))
			Expect(reg.Call(el.ID, "option", "pause")).To(MatchError(bridge.ErrInvalidArgument))
		})

		It("leaves other elements untouched on rejection", func() {
			w, _ := reg.Widget(el.ID)
			before := w.Options()

			_ = reg.Call(uuid.New(), "option", &pan.Override{Container: pan.String(".x")})
			Expect(w.Options().Container).To(Equal(before.Container))
		})
	})
})

var _ = Describe("ParseCommand", func() {
	DescribeTable("resolves public names",
		func(name string, want bridge.Command) {
			cmd, err := bridge.ParseCommand(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(cmd).To(Equal(want))
			Expect(cmd.String()).To(Equal(name))
		},
		Entry("option", "option", bridge.CmdOption),
		Entry("before", "before", bridge.CmdBefore),
		Entry("end", "end", bridge.CmdEnd),
	)

	DescribeTable("rejects",
		func(name string, want error) {
			_, err := bridge.ParseCommand(name)
			Expect(err).To(MatchError(want))
		},
		Entry("private init", "_init", bridge.ErrPrivateCommand),
		Entry("private cancel", "_cancel", bridge.ErrPrivateCommand),
		Entry("unknown", "destroy", bridge.ErrUnknownCommand),
		Entry("empty", "", bridge.ErrUnknownCommand),
	)
})
