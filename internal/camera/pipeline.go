package camera

// Effect is one post-process stage of a camera's pipeline.
type Effect struct {
	Enabled  bool
	Strength float32
}

// Pipeline is the post-processing a camera asks for. The editor keeps the
// settings with each camera; its own preview draws without them.
type Pipeline struct {
	SSAO       Effect
	SSR        Effect
	MotionBlur Effect
	VLS        Effect // volumetric light scattering
}

func DefaultPipeline() *Pipeline {
	return &Pipeline{
		SSAO:       Effect{Strength: 1},
		SSR:        Effect{Strength: 0.5},
		MotionBlur: Effect{Strength: 1},
		VLS:        Effect{Strength: 0.3},
	}
}

func (p *Pipeline) Clone() *Pipeline {
	c := *p
	return &c
}

// EffectNames lists the stages in display order.
var EffectNames = []string{"SSAO", "SSR", "Motion blur", "VLS"}

// Effects returns pointers to the stages in EffectNames order, for editing.
func (p *Pipeline) Effects() []*Effect {
	return []*Effect{&p.SSAO, &p.SSR, &p.MotionBlur, &p.VLS}
}

// Enabled counts the stages that are on.
func (p *Pipeline) Enabled() int {
	n := 0
	for _, e := range p.Effects() {
		if e.Enabled {
			n++
		}
	}
	return n
}
