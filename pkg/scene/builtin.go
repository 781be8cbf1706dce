package scene

import "sort"

const (
	cornellDescription = "Cornell box with two blocks, a glossy and a mirrored sphere"
	mirrorsDescription = "Mirrored sphere between two parallel mirrors"
)

// builtins maps built-in scene ids to their constructors
var builtins = map[string]struct {
	description string
	build       func() *Description
}{
	"cornell": {cornellDescription, Cornell},
	"mirrors": {mirrorsDescription, Mirrors},
}

// Builtin returns a fresh copy of the named built-in scene
func Builtin(name string) (*Description, bool) {
	b, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return b.build(), true
}

// BuiltinNames returns the built-in scene ids in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func tri(material string, a, b, c Vec) PrimitiveConfig {
	return PrimitiveConfig{Type: "triangle", Material: material, Vertices: []Vec{a, b, c}}
}

// block returns the ten triangles of a box standing on the floor, given its
// four floor corners a..d and its height
func block(material string, a, b, c, d Vec, height float64) []PrimitiveConfig {
	up := func(p Vec) Vec { return V(p[0], height, p[2]) }
	e, f, g, h := up(a), up(b), up(c), up(d)
	return []PrimitiveConfig{
		tri(material, e, b, a),
		tri(material, e, f, b),
		tri(material, f, d, b),
		tri(material, f, h, d),
		tri(material, h, c, d),
		tri(material, h, g, c),
		tri(material, g, e, c),
		tri(material, e, a, c),
		tri(material, g, f, e),
		tri(material, g, h, f),
	}
}

// Cornell creates the classic Cornell box authored in [0, 555] units: five
// walls, a ceiling with a square opening holding the area light, two blocks
// and two spheres. Ambient light is attenuated by ambient occlusion.
func Cornell() *Description {
	const l = 555.0
	const zFront = -l
	const hole = 75.0

	a, b, c, d := V(l, 0, zFront), V(0, 0, zFront), V(l, 0, l), V(0, 0, l)
	e, f, g, h := V(l, l, zFront), V(0, l, zFront), V(l, l, l), V(0, l, l)

	var prims []PrimitiveConfig
	prims = append(prims,
		// floor
		tri("beige", c, b, a), tri("beige", c, d, b),
		// left
		tri("red", a, e, c), tri("red", c, e, g),
		// right
		tri("green", f, b, d), tri("green", h, f, d),
		// front wall
		tri("beige", g, d, c), tri("beige", g, h, d),
		// wall behind the camera
		tri("beige", f, e, a), tri("beige", f, a, b),
	)

	// Ceiling around the light opening
	i := V(l/2+hole, l, l/2-hole)
	j := V(l/2-hole, l, l/2-hole)
	k := V(l/2+hole, l, l/2+hole)
	l2 := V(l/2-hole, l, l/2+hole)
	m := V(l/2+hole, l, zFront)
	n := V(l/2-hole, l, zFront)
	o := V(l/2+hole, l, l+5)
	p := V(l/2-hole, l, l+5)
	e, f, g, h = V(l+5, l, zFront), V(-5, l, zFront), V(l+5, l, l+5), V(-5, l, l+5)
	prims = append(prims,
		tri("beige", e, m, g), tri("beige", m, o, g),
		tri("beige", m, n, i), tri("beige", n, j, i),
		tri("beige", n, f, p), tri("beige", f, h, p),
		tri("beige", k, l2, o), tri("beige", l2, p, o),
	)

	prims = append(prims, block("blue", V(290, 0, 114), V(130, 0, 65), V(240, 0, 272), V(82, 0, 225), 165)...)
	prims = append(prims, block("orange", V(423, 0, 247), V(265, 0, 296), V(472, 0, 406), V(314, 0, 456), 330)...)
	prims = append(prims,
		PrimitiveConfig{Type: "sphere", Material: "glossy", Center: V(200, 165+40, 120), Radius: 40},
		PrimitiveConfig{Type: "sphere", Material: "mirror", Center: V(400, 60, 100), Radius: 60},
	)

	matte := func(color Vec) MaterialConfig {
		return MaterialConfig{Type: "matte", Ka: 1, Kd: 1, Color: color}
	}

	return &Description{
		Name:        "cornell",
		Description: cornellDescription,
		Scale:       l,
		ViewPlane:   ViewPlaneConfig{HRes: 500, VRes: 500, PixelSize: 1},
		Camera: CameraConfig{
			Type:          "thin_lens",
			Eye:           V(0, 0, -3),
			LookAt:        V(0, 0, 0),
			ViewDistance:  500,
			Samples:       4,
			LensRadius:    0.01,
			FocalDistance: 4,
		},
		Ambient: AmbientConfig{Ls: 0.3, Color: V(1, 1, 1), OcclusionSamples: 4},
		Materials: map[string]MaterialConfig{
			"beige":  matte(V(0.85, 0.85, 0.7)),
			"red":    matte(V(0.75, 0.15, 0.15)),
			"green":  matte(V(0.15, 0.75, 0.15)),
			"blue":   matte(V(0.05, 0.6, 1.0)),
			"orange": matte(V(0.8, 0.7, 0.05)),
			"glossy": {Type: "phong", Ka: 1, Kd: 0.8, Ks: 0.15, Exp: 1, Color: V(1, 1, 1)},
			"mirror": {Type: "reflective", Ka: 1, Kd: 0.8, Ks: 0.15, Exp: 1, Kr: 0.75, Color: V(1, 1, 1)},
		},
		Primitives: prims,
		Lights: []LightConfig{{
			Type:    "rectangle",
			Ls:      2,
			Color:   V(1, 1, 1),
			Corner:  V(l/2-hole, l-1, l/2-hole),
			A:       V(2*hole, 0, 0),
			B:       V(0, 0, 2*hole),
			Samples: 3,
		}},
	}
}

// Mirrors creates a reflective sphere standing between two facing mirrors,
// lit by a point light and a directional light
func Mirrors() *Description {
	quad := func(material string, a, b, c, d Vec) []PrimitiveConfig {
		return []PrimitiveConfig{tri(material, a, b, c), tri(material, a, c, d)}
	}

	var prims []PrimitiveConfig
	prims = append(prims, quad("floor", V(-3, -1, -3), V(3, -1, -3), V(3, -1, 3), V(-3, -1, 3))...)
	prims = append(prims, quad("mirror", V(-2, -1, -3), V(-2, 2, -3), V(-2, 2, 3), V(-2, -1, 3))...)
	prims = append(prims, quad("mirror", V(2, -1, -3), V(2, -1, 3), V(2, 2, 3), V(2, 2, -3))...)
	prims = append(prims,
		PrimitiveConfig{Type: "sphere", Material: "chrome", Center: V(0, -0.3, 0), Radius: 0.7},
		PrimitiveConfig{Type: "sphere", Material: "red", Center: V(-1, -0.7, 1), Radius: 0.3},
	)

	return &Description{
		Name:        "mirrors",
		Description: mirrorsDescription,
		ViewPlane:   ViewPlaneConfig{HRes: 400, VRes: 300, PixelSize: 1},
		Camera: CameraConfig{
			Type:         "pinhole",
			Eye:          V(0.5, 0.8, 6),
			LookAt:       V(0, -0.3, 0),
			ViewDistance: 450,
			Samples:      3,
		},
		Ambient: AmbientConfig{Ls: 0.1, Color: V(1, 1, 1)},
		Materials: map[string]MaterialConfig{
			"floor":  {Type: "matte", Ka: 1, Kd: 0.8, Color: V(0.6, 0.6, 0.6)},
			"mirror": {Type: "reflective", Ka: 0.2, Kd: 0.05, Ks: 0.1, Exp: 100, Kr: 0.9, Color: V(1, 1, 1)},
			"chrome": {Type: "reflective", Ka: 0.5, Kd: 0.3, Ks: 0.5, Exp: 50, Kr: 0.7, Color: V(0.9, 0.9, 1)},
			"red":    {Type: "phong", Ka: 0.5, Kd: 0.6, Ks: 0.3, Exp: 20, Color: V(0.9, 0.1, 0.1)},
		},
		Primitives: prims,
		Lights: []LightConfig{
			{Type: "point", Ls: 2, Color: V(1, 1, 1), Location: V(0, 1.8, 2)},
			{Type: "directional", Ls: 0.5, Color: V(1, 0.95, 0.8), Direction: V(0.3, 1, 0.5)},
		},
	}
}
