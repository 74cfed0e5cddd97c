package lights

// Sampler picks one light uniformly per light-sampling event (spec §4.7):
// pdf_pick = 1/N, independent of the shading point. Weighted sampling by
// power would reduce variance in scenes with very uneven light
// brightness, but uniform is what the path integrator needs to stay
// correct and is what this renderer implements.
type Sampler struct {
	lights []Light
}

// NewSampler creates a uniform light sampler over lights.
func NewSampler(lights []Light) *Sampler {
	return &Sampler{lights: lights}
}

// Len returns the number of lights in the set.
func (s *Sampler) Len() int { return len(s.lights) }

// Pick selects a light uniformly using u in [0,1), returning the light,
// its index, and its selection probability (1/N).
func (s *Sampler) Pick(u float64) (Light, int, float64) {
	n := len(s.lights)
	if n == 0 {
		return Light{}, -1, 0
	}
	idx := int(u * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return s.lights[idx], idx, 1.0 / float64(n)
}

// PickProbability returns 1/N, the probability Pick would have assigned
// to any given light.
func (s *Sampler) PickProbability() float64 {
	if len(s.lights) == 0 {
		return 0
	}
	return 1.0 / float64(len(s.lights))
}

// At returns the light at index i.
func (s *Sampler) At(i int) Light { return s.lights[i] }

// EnvironmentLights returns the indices of all Infinite lights, which the
// integrator must also consult for escaping-ray emission even when they
// weren't the light picked for NEE.
func (s *Sampler) EnvironmentLights() []int {
	var idx []int
	for i, l := range s.lights {
		if l.Kind == Infinite {
			idx = append(idx, i)
		}
	}
	return idx
}
