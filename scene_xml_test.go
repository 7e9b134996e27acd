package xmlscene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullScene = `<?xml version="1.0" encoding="utf-8"?>
<scene>
	<integrator type="path"/>
	<camera type="perspective">
		<float name="fov" value="45"/>
		<float name="nearClip" value="0.01"/>
		<float name="farClip" value="500"/>
		<integer name="width" value="640"/>
		<integer name="height" value="480"/>
		<transform name="toWorld">
			<lookat origin="0, 1, 5" target="0,1,0" up="0 1 0"/>
		</transform>
	</camera>
	<mesh type="obj">
		<string name="filename" value="meshes/floor.obj"/>
		<transform name="toWorld">
			<scale value="2 2 2"/>
			<translate value="1,0,0"/>
			<matrix value="1 0 0 0 0 1 0 0 0 0 1 0 0 0 0 1"/>
			<rotate axis="0 1 0" angle="45"/>
		</transform>
		<bsdf type="diffuse">
			<color name="albedo" value="0.5 0.25 0.125"/>
		</bsdf>
	</mesh>
	<mesh type="obj">
		<string name="filename" value="light.obj"/>
		<bsdf type="mirror"/>
		<emitter type="area">
			<color name="radiance" value="2, 4, 6"/>
		</emitter>
	</mesh>
</scene>`

func decode(t *testing.T, doc string, opt *ParseOptions) (*SceneDef, error) {
	t.Helper()
	return DecodeScene(strings.NewReader(doc), opt)
}

func TestDecodeScene_Full(t *testing.T) {
	scene, err := decode(t, fullScene, nil)
	require.NoError(t, err)

	cam := scene.Camera
	assert.Equal(t, 45.0, cam.FOV)
	assert.Equal(t, 0.01, cam.NearClip)
	assert.Equal(t, 500.0, cam.FarClip)
	assert.Equal(t, 640, cam.Width)
	assert.Equal(t, 480, cam.Height)
	require.NotNil(t, cam.LookAt)
	assert.Equal(t, mgl64.Vec3{0, 1, 5}, cam.LookAt.Origin)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, cam.LookAt.Target)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, cam.LookAt.Up)

	require.Len(t, scene.Meshes, 2)

	floor := scene.Meshes[0]
	assert.Equal(t, "meshes/floor.obj", floor.Filename)
	require.Len(t, floor.Transforms, 4)
	assert.Equal(t, ScaleOp{V: mgl64.Vec3{2, 2, 2}}, floor.Transforms[0])
	assert.Equal(t, TranslateOp{V: mgl64.Vec3{1, 0, 0}}, floor.Transforms[1])
	assert.Equal(t, MatrixOp{M: mgl64.Ident4()}, floor.Transforms[2])
	assert.Equal(t, RotateOp{Axis: mgl64.Vec3{0, 1, 0}, AngleDeg: 45}, floor.Transforms[3])
	assert.Equal(t, DiffuseMaterial{Albedo: Color{R: 0.5, G: 0.25, B: 0.125}}, floor.Material)
	assert.Nil(t, floor.Emitter)

	light := scene.Meshes[1]
	assert.Empty(t, light.Transforms)
	assert.Nil(t, light.Material, "mirror bsdf has no material mapping")
	require.NotNil(t, light.Emitter)
	assert.Equal(t, Color{R: 2, G: 4, B: 6}, light.Emitter.Radiance)

	require.Len(t, scene.Warnings, 1)
	assert.Contains(t, scene.Warnings[0], `"mirror"`)
}

func TestDecodeScene_CameraDefaults(t *testing.T) {
	scene, err := decode(t, `<scene><camera type="perspective"/></scene>`, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCamera(), scene.Camera)
	assert.Nil(t, scene.Camera.LookAt)
	assert.Equal(t, 1e-4, scene.Camera.NearClip)
	assert.Equal(t, 1e4, scene.Camera.FarClip)
	assert.Equal(t, 30.0, scene.Camera.FOV)
	assert.Equal(t, 1280, scene.Camera.Width)
	assert.Equal(t, 720, scene.Camera.Height)
}

func TestDecodeScene_NoCamera(t *testing.T) {
	scene, err := decode(t, `<scene></scene>`, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCamera(), scene.Camera)
	assert.Empty(t, scene.Meshes)
}

func TestDecodeScene_ExtraCameraWarns(t *testing.T) {
	scene, err := decode(t, `<scene>
		<camera><float name="fov" value="10"/></camera>
		<camera><float name="fov" value="20"/></camera>
	</scene>`, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, scene.Camera.FOV)
	require.Len(t, scene.Warnings, 1)
	assert.Contains(t, scene.Warnings[0], "scene/camera[2]")
}

func TestDecodeScene_MissingFilename(t *testing.T) {
	_, err := decode(t, `<scene>
		<mesh type="obj"><string name="filename" value="a.obj"/></mesh>
		<mesh type="obj"><bsdf type="diffuse"><color name="albedo" value="1 1 1"/></bsdf></mesh>
	</scene>`, nil)
	require.ErrorIs(t, err, ErrMissingField)

	var ee *ElementError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "scene/mesh[2]", ee.Path)
}

func TestDecodeScene_UnknownTransform(t *testing.T) {
	doc := `<scene><mesh>
		<string name="filename" value="a.obj"/>
		<transform name="toWorld">
			<translate value="1 0 0"/>
			<shear value="1 2 3"/>
		</transform>
	</mesh></scene>`

	_, err := decode(t, doc, nil)
	require.ErrorIs(t, err, ErrUnsupportedVariant)
	assert.Contains(t, err.Error(), "scene/mesh/transform/shear")

	scene, err := decode(t, doc, &ParseOptions{LenientTransforms: true})
	require.NoError(t, err)
	require.Len(t, scene.Meshes[0].Transforms, 1)
	require.Len(t, scene.Warnings, 1)
	assert.Contains(t, scene.Warnings[0], `"shear"`)
}

func TestDecodeScene_ParseErrors(t *testing.T) {
	cases := map[string]string{
		"malformed xml": `<scene><camera></scene>`,
		"bad float": `<scene><camera><float name="fov" value="wide"/></camera></scene>`,
		"bad width": `<scene><camera><integer name="width" value="12.5"/></camera></scene>`,
		"zero height": `<scene><camera><integer name="height" value="0"/></camera></scene>`,
		"bad lookat": `<scene><camera><transform name="toWorld">
			<lookat origin="0 0 x" target="0 0 1" up="0 1 0"/></transform></camera></scene>`,
		"short matrix": `<scene><mesh><string name="filename" value="a.obj"/>
			<transform name="toWorld"><matrix value="1 0 0 0"/></transform></mesh></scene>`,
		"bad albedo": `<scene><mesh><string name="filename" value="a.obj"/>
			<bsdf type="diffuse"><color name="albedo" value="1 1"/></bsdf></mesh></scene>`,
		"zero axis": `<scene><mesh><string name="filename" value="a.obj"/>
			<transform name="toWorld"><rotate axis="0 0 0" angle="10"/></transform></mesh></scene>`,
		"empty": ``,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decode(t, doc, nil)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestDecodeScene_MissingFields(t *testing.T) {
	cases := map[string]string{
		"toWorld without lookat": `<scene><camera><transform name="toWorld"/></camera></scene>`,
		"lookat without up": `<scene><camera><transform name="toWorld">
			<lookat origin="0 0 0" target="0 0 1"/></transform></camera></scene>`,
		"diffuse without albedo": `<scene><mesh><string name="filename" value="a.obj"/>
			<bsdf type="diffuse"/></mesh></scene>`,
		"emitter without radiance": `<scene><mesh><string name="filename" value="a.obj"/>
			<emitter type="area"/></mesh></scene>`,
		"filename without value": `<scene><mesh><string name="filename"/></mesh></scene>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decode(t, doc, nil)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestDecodeScene_LookAtTransformDegenerate(t *testing.T) {
	_, err := decode(t, `<scene><mesh><string name="filename" value="a.obj"/>
		<transform name="toWorld"><lookat origin="0 0 0" target="0 2 0" up="0 1 0"/></transform>
	</mesh></scene>`, nil)
	assert.ErrorIs(t, err, ErrDegenerateBasis)
}

func TestDecodeScene_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<scene><mesh><string name=\"filename\" value=\"caf\xe9.obj\"/></mesh></scene>"
	scene, err := decode(t, doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "café.obj", scene.Meshes[0].Filename)
}

func TestReadSceneFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.xml")
	require.NoError(t, os.WriteFile(path, []byte(fullScene), 0644))

	scene, err := ReadSceneFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, scene.Meshes, 2)

	_, err = ReadSceneFile(filepath.Join(dir, "missing.xml"), nil)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDecodeScene_PaddedScalars(t *testing.T) {
	scene, err := decode(t, `<scene>
		<camera>
			<float name="fov" value=" 45 "/>
			<integer name="width" value="	640"/>
			<integer name="height" value="480 "/>
		</camera>
		<mesh><string name="filename" value="a.obj"/>
			<transform name="toWorld"><rotate axis="0 1 0" angle=" 90 "/></transform>
		</mesh>
	</scene>`, nil)
	require.NoError(t, err)
	assert.Equal(t, 45.0, scene.Camera.FOV)
	assert.Equal(t, 640, scene.Camera.Width)
	assert.Equal(t, 480, scene.Camera.Height)
	assert.Equal(t, RotateOp{Axis: mgl64.Vec3{0, 1, 0}, AngleDeg: 90}, scene.Meshes[0].Transforms[0])
}
