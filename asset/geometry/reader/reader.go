// Package reader loads scene descriptions from yaml documents.
package reader

import (
	"fmt"
	"os"
	"time"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/vantage-render/vantage/asset/geometry"
	"github.com/vantage-render/vantage/log"
	"github.com/vantage-render/vantage/types"
)

var logger = log.New("scene reader")

type rawRotation struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

type rawBox struct {
	Center      [3]float32   `yaml:"center"`
	HalfExtents [3]float32   `yaml:"half_extents"`
	Rotation    *rawRotation `yaml:"rotation"`
}

type rawSphere struct {
	Center [3]float32 `yaml:"center"`
	Radius float32    `yaml:"radius"`
}

type rawCapsule struct {
	P0     [3]float32 `yaml:"p0"`
	P1     [3]float32 `yaml:"p1"`
	Radius float32    `yaml:"radius"`
}

type rawPlane struct {
	Center [3]float32 `yaml:"center"`
	Normal [3]float32 `yaml:"normal"`
	Width  float32    `yaml:"width"`
	Height float32    `yaml:"height"`
}

type rawScene struct {
	Boxes    []rawBox     `yaml:"boxes"`
	Spheres  []rawSphere  `yaml:"spheres"`
	Capsules []rawCapsule `yaml:"capsules"`
	Planes   []rawPlane   `yaml:"planes"`
}

// Read a scene description from the given yaml file.
func ReadScene(path string) (*geometry.Scene, error) {
	start := time.Now()
	logger.Infof("parsing scene from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readScene: could not read %s: %v", path, err)
	}

	sc, err := parseScene(data)
	if err != nil {
		return nil, fmt.Errorf("readScene: %s: %v", path, err)
	}

	logger.Infof("parsed scene in %d ms (%d primitives)", time.Since(start).Nanoseconds()/1e6, sc.PrimitiveCount())
	return sc, nil
}

func parseScene(data []byte) (*geometry.Scene, error) {
	var raw rawScene
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed scene document: %v", err)
	}

	sc := &geometry.Scene{}

	for idx, rb := range raw.Boxes {
		if err := validVec(rb.Center[:], rb.HalfExtents[:]); err != nil {
			return nil, fmt.Errorf("box %d: %v", idx, err)
		}
		orientation := types.QuatIdent()
		if rb.Rotation != nil {
			orientation = types.QuatFromAxisAngle(vec3(rb.Rotation.Axis), rb.Rotation.Angle)
		}
		sc.Boxes = append(sc.Boxes, geometry.Box{
			Center:      vec3(rb.Center),
			HalfExtents: vec3(rb.HalfExtents),
			Orientation: orientation,
		})
	}

	for idx, rs := range raw.Spheres {
		if err := validVec(rs.Center[:]); err != nil {
			return nil, fmt.Errorf("sphere %d: %v", idx, err)
		}
		if rs.Radius <= 0 || math32.IsNaN(rs.Radius) {
			return nil, fmt.Errorf("sphere %d: invalid radius %f", idx, rs.Radius)
		}
		sc.Spheres = append(sc.Spheres, geometry.Sphere{
			Center: vec3(rs.Center),
			Radius: rs.Radius,
		})
	}

	for idx, rc := range raw.Capsules {
		if err := validVec(rc.P0[:], rc.P1[:]); err != nil {
			return nil, fmt.Errorf("capsule %d: %v", idx, err)
		}
		if rc.Radius <= 0 || math32.IsNaN(rc.Radius) {
			return nil, fmt.Errorf("capsule %d: invalid radius %f", idx, rc.Radius)
		}
		sc.Capsules = append(sc.Capsules, geometry.Capsule{
			P0:     vec3(rc.P0),
			P1:     vec3(rc.P1),
			Radius: rc.Radius,
		})
	}

	for idx, rp := range raw.Planes {
		if err := validVec(rp.Center[:], rp.Normal[:]); err != nil {
			return nil, fmt.Errorf("plane %d: %v", idx, err)
		}
		normal := vec3(rp.Normal)
		if normal.Len() == 0 {
			return nil, fmt.Errorf("plane %d: zero-length normal", idx)
		}
		if math32.IsNaN(rp.Width) || math32.IsNaN(rp.Height) {
			return nil, fmt.Errorf("plane %d: invalid dimensions %f x %f", idx, rp.Width, rp.Height)
		}
		sc.Planes = append(sc.Planes, geometry.Plane{
			Center: vec3(rp.Center),
			Normal: normal,
			Width:  rp.Width,
			Height: rp.Height,
		})
	}

	return sc, nil
}

func vec3(v [3]float32) types.Vec3 {
	return types.Vec3{v[0], v[1], v[2]}
}

func validVec(vecs ...[]float32) error {
	for _, vec := range vecs {
		for _, comp := range vec {
			if math32.IsNaN(comp) || math32.IsInf(comp, 0) {
				return fmt.Errorf("non-finite coordinate %f", comp)
			}
		}
	}
	return nil
}
