package xmlscene

// emissionScale converts emitter radiance into the host's emissive strength.
const emissionScale = 1000.0

// MaterialRecord is the host-facing material resolved from a mesh's bsdf and emitter.
type MaterialRecord struct {
	Diffuse  *Color // nil leaves the host's default color alone
	Emission float64
	Emissive bool
}

// EmissionStrength maps radiance to a scalar strength: max(R,G,B)/1000.
func EmissionStrength(radiance Color) float64 {
	return radiance.Max() / emissionScale
}

// ResolveMaterial returns the material a mesh should carry, or false when the
// mesh has neither a recognised bsdf nor an emitter.
func ResolveMaterial(mesh MeshDef) (MaterialRecord, bool) {
	var rec MaterialRecord
	found := false

	switch m := mesh.Material.(type) {
	case DiffuseMaterial:
		c := m.Albedo
		rec.Diffuse = &c
		found = true
	}

	if mesh.Emitter != nil {
		rec.Emission = EmissionStrength(mesh.Emitter.Radiance)
		rec.Emissive = true
		found = true
	}

	return rec, found
}
