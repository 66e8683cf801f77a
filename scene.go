package arspawn

import (
	"errors"
	"sort"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// Asset is a template for a visual hierarchy, the thing a placement instantiates.
type Asset struct {
	Name      string          `yaml:"name"`
	Renderers []RendererAsset `yaml:"renderers,omitempty"`
	Children  []*Asset        `yaml:"children,omitempty"`
}

type RendererAsset struct {
	Name      string          `yaml:"name"`
	Materials []MaterialAsset `yaml:"materials"`
}

type MaterialAsset struct {
	Shader string                `yaml:"shader"`
	Colors map[string]mgl32.Vec4 `yaml:"colors"`
}

// MeshRenderer owns per-instance copies of its materials.
type MeshRenderer struct {
	Name      string
	materials []*PropertyMaterial
}

func (r *MeshRenderer) Materials() []Material {
	mats := make([]Material, len(r.materials))
	for i, m := range r.materials {
		mats[i] = m
	}
	return mats
}

// Node is one transform in the scene graph.
type Node struct {
	ecs.BasicEntity

	name      string
	pose      Pose
	scale     mgl32.Vec3
	parent    *Node
	children  []*Node
	renderers []*MeshRenderer
}

// NewNode creates a detached node with unit scale.
func NewNode(name string, pose Pose) *Node {
	return &Node{
		BasicEntity: ecs.NewBasic(),
		name:        name,
		pose:        pose,
		scale:       mgl32.Vec3{1, 1, 1},
	}
}

func (n *Node) Name() string          { return n.name }
func (n *Node) Pose() Pose            { return n.pose }
func (n *Node) SetPose(p Pose)        { n.pose = p }
func (n *Node) Scale() mgl32.Vec3     { return n.scale }
func (n *Node) SetScale(s mgl32.Vec3) { n.scale = s }
func (n *Node) Children() []*Node     { return n.children }

func (n *Node) Parent() Entity {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) SetParent(p Entity) {
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	pn, ok := p.(*Node)
	if !ok || pn == nil {
		return
	}
	n.parent = pn
	pn.children = append(pn.children, n)
}

func (n *Node) removeChild(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) Renderers() []Renderer {
	var out []Renderer
	n.walk(func(node *Node) {
		for _, r := range node.renderers {
			out = append(out, r)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// Scene is an in-memory host for instantiated entities.
type Scene struct {
	// DefaultParent, when set, is the transform new instances are created under, the way an
	// engine instantiates under the spawning object.
	DefaultParent *Node

	nodes map[uint64]*Node
}

func NewScene() *Scene {
	return &Scene{nodes: map[uint64]*Node{}}
}

// Add registers an existing node and its descendants.
func (s *Scene) Add(n *Node) {
	n.walk(func(node *Node) {
		s.nodes[node.ID()] = node
	})
}

func (s *Scene) Instantiate(asset *Asset, pose Pose) (Entity, error) {
	if asset == nil {
		return nil, errors.New("instantiate: nil asset")
	}
	root := s.build(asset, pose)
	if s.DefaultParent != nil {
		root.SetParent(s.DefaultParent)
	}
	s.Add(root)
	return root, nil
}

func (s *Scene) build(asset *Asset, pose Pose) *Node {
	n := NewNode(asset.Name, pose)
	for _, ra := range asset.Renderers {
		r := &MeshRenderer{Name: ra.Name}
		for _, ma := range ra.Materials {
			r.materials = append(r.materials, NewPropertyMaterial(ma.Shader, ma.Colors))
		}
		n.renderers = append(n.renderers, r)
	}
	for _, child := range asset.Children {
		if child == nil {
			continue
		}
		c := s.build(child, pose)
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Destroy removes e and its whole subtree from the scene.
func (s *Scene) Destroy(e Entity) {
	n, ok := e.(*Node)
	if !ok || n == nil {
		return
	}
	n.SetParent(nil)
	n.walk(func(node *Node) {
		delete(s.nodes, node.ID())
	})
}

func (s *Scene) Lookup(id uint64) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Len counts every live node, descendants included.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Roots returns the live nodes without a parent, ordered by id.
func (s *Scene) Roots() []*Node {
	var roots []*Node
	for _, n := range s.nodes {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID() < roots[j].ID() })
	return roots
}
