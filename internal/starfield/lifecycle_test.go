package starfield_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
)

var _ = Describe("Field", func() {
	var (
		cfg     starfield.Config
		capture *hal.Capture
		crank   *hal.Crank
		field   *starfield.Field
	)

	BeforeEach(func() {
		cfg = starfield.DefaultConfig()
		cfg.Stars = 24
		cfg.Seed = 99
		capture = &hal.Capture{}
		crank = hal.NewCrank(0)
	})

	JustBeforeEach(func() {
		var err error
		field, err = starfield.New(cfg, starfield.Ports{Display: capture, Renderer: capture, Input: crank})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("requests the refresh rate once and draws nothing", func() {
			Expect(capture.Rate).To(BeNumerically("==", starfield.DefaultRefreshRate))
			Expect(capture.Clears).To(BeZero())
			Expect(field.Frame()).To(BeZero())
		})

		It("starts every star as a dot", func() {
			for _, s := range field.Stars() {
				Expect(s.PZ).To(Equal(s.Z))
				Expect(s.Z).To(And(BeNumerically(">=", 0), BeNumerically("<", cfg.View.Width)))
			}
		})
	})

	Describe("a frame", func() {
		It("clears once and strokes one white line per star", func() {
			crank.Turn(3)
			Expect(field.Update()).To(Succeed())

			Expect(capture.Clears).To(Equal(1))
			Expect(capture.Background).To(Equal(hal.Black))
			Expect(capture.Lines).To(HaveLen(cfg.Stars))
			for _, l := range capture.Lines {
				Expect(l.Color).To(Equal(hal.White))
				Expect(l.Thickness).To(And(BeNumerically(">=", 0), BeNumerically("<=", starfield.MaxRadius)))
			}
		})

		It("drains the crank so an idle crank stops the field", func() {
			crank.Turn(6)
			Expect(field.Update()).To(Succeed())
			Expect(field.LastStats().Speed).To(BeNumerically("==", 6))

			before := field.Stars()
			Expect(field.Update()).To(Succeed())
			Expect(field.LastStats().Speed).To(BeZero())
			Expect(field.Stars()).To(Equal(before))
		})

		It("draws streaks whose length grows with speed", func() {
			crank.SetBase(2)
			Expect(field.Update()).To(Succeed())
			Expect(field.Update()).To(Succeed())
			slow := field.LastStats().MeanStreak

			crank.SetBase(20)
			Expect(field.Update()).To(Succeed())
			Expect(field.LastStats().MeanStreak).To(BeNumerically(">", slow))
		})
	})

	Describe("recycling", func() {
		BeforeEach(func() {
			cfg.Stars = starfield.MaxStars
		})

		It("keeps every depth at or beyond the recycle threshold", func() {
			crank.SetBase(9)
			for i := 0; i < 120; i++ {
				Expect(field.Update()).To(Succeed())
				for _, s := range field.Stars() {
					Expect(s.Z).To(BeNumerically(">=", starfield.RecycleDepth))
				}
			}
			Expect(field.Len()).To(Equal(starfield.MaxStars))
		})

		It("places recycled stars in the positive quadrant in unsigned mode", func() {
			cfg.View.Recycle = starfield.RecycleUnsigned
			field, _ = starfield.New(cfg, starfield.Ports{Display: capture, Renderer: capture, Input: hal.Fixed(500)})

			Expect(field.Update()).To(Succeed())
			Expect(field.LastStats().Recycled).To(Equal(starfield.MaxStars))
			for _, s := range field.Stars() {
				Expect(s.X).To(BeNumerically(">=", 0))
				Expect(s.Y).To(BeNumerically(">=", 0))
			}
		})
	})

	Describe("centering", func() {
		It("moves the vanishing point from the corner to the centre", func() {
			s := starfield.Star{X: 0, Y: 0, Z: 100, PZ: 100}
			v := cfg.View

			v.Centered = false
			Expect(s.Project(v).To).To(Equal(hal.Point{X: 0, Y: 0}))

			v.Centered = true
			Expect(s.Project(v).To).To(Equal(hal.Point{X: 200, Y: 120}))
		})
	})
})
