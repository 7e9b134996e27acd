package document

import (
	"encoding/json"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/xmlscene"
)

type CameraData struct {
	ID       ObjectId   `json:"id"`
	Name     string     `json:"name"`
	Position mgl64.Vec3 `json:"position"`
	Rotation mgl64.Quat `json:"rotation"`
	EulerDeg mgl64.Vec3 `json:"euler_deg"`
	NearClip float64    `json:"near_clip"`
	FarClip  float64    `json:"far_clip"`
	FOV      float64    `json:"fov"`
}

type MeshData struct {
	ID            ObjectId   `json:"id"`
	Name          string     `json:"name"`
	SourcePath    string     `json:"source_path"`
	VertexCount   int        `json:"vertex_count"`
	TriangleCount int        `json:"triangle_count"`
	BoundsMin     mgl64.Vec3 `json:"bounds_min"`
	BoundsMax     mgl64.Vec3 `json:"bounds_max"`
	Material      ObjectId   `json:"material,omitempty"`
}

type MaterialData struct {
	ID       ObjectId       `json:"id"`
	Name     string         `json:"name"`
	Color    xmlscene.Color `json:"color"`
	Emission float64        `json:"emission"`
}

type SnapshotData struct {
	Resolution [2]int         `json:"resolution"`
	Cameras    []CameraData   `json:"cameras"`
	Meshes     []MeshData     `json:"meshes"`
	Materials  []MaterialData `json:"materials"`
}

// Snapshot captures the document in creation order. Only attached materials
// are listed.
func (d *Document) Snapshot() SnapshotData {
	snap := SnapshotData{Resolution: [2]int{d.Render.Width, d.Render.Height}}
	seen := make(map[ObjectId]bool)

	for _, id := range d.order {
		if c, ok := d.cameras[id]; ok {
			snap.Cameras = append(snap.Cameras, CameraData{
				ID:       c.Id,
				Name:     c.Name,
				Position: c.Transform.Position,
				Rotation: c.Transform.Rotation,
				EulerDeg: c.Euler.Degrees(),
				NearClip: c.NearClip,
				FarClip:  c.FarClip,
				FOV:      c.FOV,
			})
			continue
		}

		m, ok := d.meshes[id]
		if !ok {
			continue
		}
		data := MeshData{
			ID:            m.Id,
			Name:          m.Name,
			SourcePath:    m.SourcePath,
			VertexCount:   len(m.Vertices),
			TriangleCount: len(m.Triangles),
			Material:      m.Material,
		}
		data.BoundsMin, data.BoundsMax, _ = m.Bounds()
		snap.Meshes = append(snap.Meshes, data)

		if mat, ok := d.materials[m.Material]; ok && !seen[mat.Id] {
			seen[mat.Id] = true
			snap.Materials = append(snap.Materials, MaterialData{
				ID:       mat.Id,
				Name:     mat.Name,
				Color:    mat.Color,
				Emission: mat.Emission,
			})
		}
	}
	return snap
}

func (d *Document) MarshalSnapshot() ([]byte, error) {
	return json.MarshalIndent(d.Snapshot(), "", "  ")
}

func (d *Document) SaveSnapshot(filename string) error {
	bytes, err := d.MarshalSnapshot()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, bytes, 0644)
}
