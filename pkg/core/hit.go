package core

// HitRecord describes a ray/primitive intersection. Scene-level data
// (material, mesh) is referenced by integer index rather than by
// pointer, so hits stay cheap to copy and serialization-friendly.
type HitRecord struct {
	Point     Vec3
	Normal    Vec3    // shading normal, oriented by SetFaceNormal
	Tangent   Vec3    // zero if the primitive doesn't supply one
	Bitangent Vec3
	T         float64
	U, V      float64 // surface parameterization / barycentrics
	FrontFace bool
	MaterialIndex int
	PrimitiveIndex int // index into the scene's flattened primitive array
}

// SetFaceNormal orients outwardNormal so it opposes the incoming ray and
// records whether a flip was needed.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
