package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjectId indexes a render object inside a Scene.
type ObjectId int

const NoObject ObjectId = -1

// Instance is one transform slot of an instanced render object.
type Instance struct {
	Transform mgl32.Mat4
	Active    bool
}

// RenderObject is a shared model drawn once per active instance. Children are
// drawn relative to instance 0 of their parent.
type RenderObject struct {
	Name      string
	Model     string
	Parent    ObjectId
	Children  []ObjectId
	Instances []Instance
	Uniforms  map[string]any
}

// Scene is an arena of render objects linked by index.
type Scene struct {
	objects []RenderObject
}

func NewScene() *Scene {
	return &Scene{}
}

// Add creates an object with a single identity instance.
func (s *Scene) Add(name, model string, parent ObjectId) ObjectId {
	id := ObjectId(len(s.objects))
	s.objects = append(s.objects, RenderObject{
		Name:      name,
		Model:     model,
		Parent:    parent,
		Instances: []Instance{{Transform: mgl32.Ident4(), Active: true}},
		Uniforms:  make(map[string]any),
	})
	if parent != NoObject {
		p := s.mustGet(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *Scene) Len() int {
	return len(s.objects)
}

func (s *Scene) Object(id ObjectId) *RenderObject {
	return s.mustGet(id)
}

// Find returns the first object with the given name.
func (s *Scene) Find(name string) (ObjectId, bool) {
	for i := range s.objects {
		if s.objects[i].Name == name {
			return ObjectId(i), true
		}
	}
	return NoObject, false
}

func (s *Scene) mustGet(id ObjectId) *RenderObject {
	if id < 0 || int(id) >= len(s.objects) {
		panic(fmt.Sprintf("render object %d out of range (%d objects)", id, len(s.objects)))
	}
	return &s.objects[id]
}

func (s *Scene) InstanceCount(id ObjectId) int {
	return len(s.mustGet(id).Instances)
}

func (s *Scene) AddInstance(id ObjectId, transform mgl32.Mat4) int {
	obj := s.mustGet(id)
	obj.Instances = append(obj.Instances, Instance{Transform: transform, Active: true})
	return len(obj.Instances) - 1
}

// SetTransform writes an instance slot, growing the slot list when needed.
func (s *Scene) SetTransform(id ObjectId, instance int, transform mgl32.Mat4) {
	obj := s.mustGet(id)
	for len(obj.Instances) <= instance {
		obj.Instances = append(obj.Instances, Instance{Transform: mgl32.Ident4(), Active: true})
	}
	obj.Instances[instance].Transform = transform
}

func (s *Scene) DeactivateInstance(id ObjectId, instance int) {
	obj := s.mustGet(id)
	if instance < 0 || instance >= len(obj.Instances) {
		return
	}
	obj.Instances[instance].Active = false
}

func (s *Scene) ActivateInstance(id ObjectId, instance int) {
	obj := s.mustGet(id)
	if instance < 0 || instance >= len(obj.Instances) {
		return
	}
	obj.Instances[instance].Active = true
}

func (s *Scene) Instance(id ObjectId, instance int) (Instance, bool) {
	obj := s.mustGet(id)
	if instance < 0 || instance >= len(obj.Instances) {
		return Instance{}, false
	}
	return obj.Instances[instance], true
}

func (s *Scene) SetUniform(id ObjectId, name string, value any) {
	s.mustGet(id).Uniforms[name] = value
}

func (s *Scene) Uniform(id ObjectId, name string) (any, bool) {
	v, ok := s.mustGet(id).Uniforms[name]
	return v, ok
}

// ParentTransform is the accumulated world transform an object's instances
// are expressed in.
func (s *Scene) ParentTransform(id ObjectId) mgl32.Mat4 {
	m := mgl32.Ident4()
	for p := s.mustGet(id).Parent; p != NoObject; p = s.objects[p].Parent {
		m = s.objects[p].Instances[0].Transform.Mul4(m)
	}
	return m
}

func (s *Scene) WorldTransform(id ObjectId, instance int) mgl32.Mat4 {
	inst, ok := s.Instance(id, instance)
	if !ok {
		return s.ParentTransform(id)
	}
	return s.ParentTransform(id).Mul4(inst.Transform)
}

// Walk visits every active instance depth first, starting from the roots.
// Returning false from fn stops the walk.
func (s *Scene) Walk(fn func(id ObjectId, obj *RenderObject, instance int, world mgl32.Mat4) bool) {
	for i := range s.objects {
		if s.objects[i].Parent == NoObject {
			if !s.walk(ObjectId(i), mgl32.Ident4(), fn) {
				return
			}
		}
	}
}

func (s *Scene) walk(id ObjectId, parent mgl32.Mat4, fn func(ObjectId, *RenderObject, int, mgl32.Mat4) bool) bool {
	obj := &s.objects[id]
	for i, inst := range obj.Instances {
		if !inst.Active {
			continue
		}
		if !fn(id, obj, i, parent.Mul4(inst.Transform)) {
			return false
		}
	}
	base := parent.Mul4(obj.Instances[0].Transform)
	for _, child := range obj.Children {
		if !s.walk(child, base, fn) {
			return false
		}
	}
	return true
}
