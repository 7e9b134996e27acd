package xmlscene

import (
	"fmt"
	"path/filepath"
	"strings"
)

const cameraName = "Camera"

// Importer loads scene files into a SceneBuilder.
type Importer struct {
	builder SceneBuilder
	opt     Options
}

// ImportedMesh describes one mesh object created by an import.
type ImportedMesh struct {
	Handle   MeshHandle
	Name     string
	Path     string
	Ops      int
	Material MaterialHandle // empty when no material was attached
}

// Report summarizes a finished import.
type Report struct {
	ScenePath string
	Camera    CameraHandle
	Meshes    []ImportedMesh
	Warnings  []string
}

// meshPlan is a mesh whose numbers are fully resolved and only waits for
// host calls.
type meshPlan struct {
	def         MeshDef
	name        string
	path        string
	material    MaterialRecord
	hasMaterial bool
}

type importPlan struct {
	camera CameraDef
	pose   *Pose
	meshes []meshPlan
}

func NewImporter(builder SceneBuilder, opts ...Option) *Importer {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return &Importer{builder: builder, opt: o.normalize()}
}

// Import parses the scene file at path and builds it into the host.
//
// Parsing and all numeric resolution finish before the first host call, so
// malformed scenes leave the host untouched. Host failures abort the import
// and keep whatever objects were already created.
func (im *Importer) Import(path string) (*Report, error) {
	log := im.opt.Logger
	log.Debugf("parsing scene %s", path)

	scene, err := ReadSceneFile(path, &ParseOptions{LenientTransforms: im.opt.LenientTransforms})
	if err != nil {
		return nil, err
	}
	report, err := im.ImportScene(scene, filepath.Dir(path))
	if report != nil {
		report.ScenePath = path
	}
	return report, err
}

// ImportScene builds an already parsed scene. Mesh filenames resolve against baseDir.
func (im *Importer) ImportScene(scene *SceneDef, baseDir string) (*Report, error) {
	log := &warningLog{Logger: im.opt.Logger}
	for _, w := range scene.Warnings {
		log.Warnf("%s", w)
	}

	plan, err := resolveScene(scene, baseDir)
	if err != nil {
		return nil, err
	}
	log.Debugf("resolved camera and %d meshes", len(plan.meshes))

	report := &Report{}
	err = im.apply(plan, report, log)
	report.Warnings = log.Warnings()
	if err != nil {
		return report, err
	}
	log.Infof("imported camera and %d meshes", len(report.Meshes))
	return report, nil
}

func resolveScene(scene *SceneDef, baseDir string) (*importPlan, error) {
	plan := &importPlan{camera: scene.Camera}

	if la := scene.Camera.LookAt; la != nil {
		pose, err := ResolveLookAt(*la)
		if err != nil {
			return nil, atPath("scene/camera/toWorld", err)
		}
		plan.pose = &pose
	}

	for _, def := range scene.Meshes {
		mp := meshPlan{
			def:  def,
			name: meshObjectName(def.Filename),
			path: def.Filename,
		}
		if !filepath.IsAbs(mp.path) {
			mp.path = filepath.Join(baseDir, filepath.FromSlash(def.Filename))
		}
		mp.material, mp.hasMaterial = ResolveMaterial(def)
		plan.meshes = append(plan.meshes, mp)
	}
	return plan, nil
}

func meshObjectName(filename string) string {
	base := filepath.Base(filepath.FromSlash(filename))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (im *Importer) apply(plan *importPlan, report *Report, log Logger) error {
	b := im.builder

	if !im.opt.KeepExisting {
		if err := b.ClearScene(); err != nil {
			return fmt.Errorf("clear scene: %w", err)
		}
	}

	cam, err := b.CreateCamera(cameraName)
	if err != nil {
		return fmt.Errorf("create camera: %w", err)
	}
	report.Camera = cam

	if plan.pose != nil {
		log.Debugf("camera at %v, euler %v deg", plan.pose.Position, plan.pose.Rotation.Degrees())
		if err := b.SetCameraPose(cam, *plan.pose); err != nil {
			return fmt.Errorf("set camera pose: %w", err)
		}
	}
	lens := Lens{NearClip: plan.camera.NearClip, FarClip: plan.camera.FarClip, FOVDeg: plan.camera.FOV}
	if err := b.SetCameraLens(cam, lens); err != nil {
		return fmt.Errorf("set camera lens: %w", err)
	}
	if err := b.SetResolution(plan.camera.Width, plan.camera.Height); err != nil {
		return fmt.Errorf("set resolution: %w", err)
	}

	for i := range plan.meshes {
		mesh, err := im.applyMesh(&plan.meshes[i], log)
		if err != nil {
			return err
		}
		report.Meshes = append(report.Meshes, mesh)
	}
	return nil
}

func (im *Importer) applyMesh(mp *meshPlan, log Logger) (ImportedMesh, error) {
	b := im.builder

	h, err := b.ImportMesh(mp.path)
	if err != nil {
		return ImportedMesh{}, fmt.Errorf("import mesh %q: %w", mp.path, err)
	}
	out := ImportedMesh{Handle: h, Name: mp.name, Path: mp.path, Ops: len(mp.def.Transforms)}
	if namer, ok := b.(MeshNamer); ok {
		if name, ok := namer.MeshName(h); ok {
			out.Name = name
		}
	}

	if err := b.TransformVertices(h, AxisFlip); err != nil {
		return out, fmt.Errorf("mesh %q: axis flip: %w", out.Name, err)
	}
	for _, op := range mp.def.Transforms {
		log.Debugf("mesh %s: %v", out.Name, op)
		if err := b.TransformVertices(h, op.Matrix()); err != nil {
			return out, fmt.Errorf("mesh %q: %v: %w", out.Name, op, err)
		}
	}

	if !mp.hasMaterial {
		return out, nil
	}
	mat, err := b.CreateMaterial(out.Name)
	if err != nil {
		return out, fmt.Errorf("mesh %q: create material: %w", out.Name, err)
	}
	if c := mp.material.Diffuse; c != nil {
		if err := b.SetDiffuseColor(mat, *c); err != nil {
			return out, fmt.Errorf("mesh %q: diffuse color: %w", out.Name, err)
		}
	}
	if mp.material.Emissive {
		if err := b.SetEmission(mat, mp.material.Emission); err != nil {
			return out, fmt.Errorf("mesh %q: emission: %w", out.Name, err)
		}
	}
	if err := b.AttachMaterial(h, mat); err != nil {
		return out, fmt.Errorf("mesh %q: attach material: %w", out.Name, err)
	}
	out.Material = mat
	return out, nil
}
